package types

// Roles recognized by the platform.
const (
	RoleAdmin    = "ADMIN"
	RoleCorretor = "CORRETOR"
)

// User represents an account as returned by the API.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id"`

	// Name is the user's full name.
	Name string `json:"name"`

	// Email is the login identifier.
	Email string `json:"email"`

	// Role indicates the user's authorization level
	// (e.g., "ADMIN", "CORRETOR").
	Role string `json:"role"`
}

// NewUser is the payload used to create an account. Password is sent
// once and never read back.
type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by a successful login. User is
// optional: some API versions only return the token.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}
