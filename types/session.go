package types

// Session is the authentication state persisted on the client.
// A non-empty Token means the user is treated as authenticated;
// no expiry is checked locally.
type Session struct {
	Token  string `json:"token"`
	Role   string `json:"role,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	UserID int    `json:"userId,omitempty"`
}

// SessionUser is the best-effort user view rebuilt from stored
// session fields.
type SessionUser struct {
	Role   string `json:"role,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	UserID int    `json:"userId,omitempty"`
}
