package session

import (
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/imobi/client/types"
)

type identityClaims struct {
	Role   string `json:"role,omitempty"`
	Name   string `json:"name,omitempty"`
	UserID any    `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

// IdentityFromToken reads user attributes embedded in a JWT without
// verifying it. The client cannot verify the signature and never uses
// the result for access decisions; it only fills in the session when
// the login response carries no user object. Expiry is not checked.
func IdentityFromToken(token string) (types.SessionUser, bool) {
	var claims identityClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(strings.TrimSpace(token), &claims); err != nil {
		return types.SessionUser{}, false
	}

	user := types.SessionUser{
		Role: claims.Role,
		Name: claims.Name,
	}
	if strings.Contains(claims.Subject, "@") {
		user.Email = claims.Subject
	}
	switch id := claims.UserID.(type) {
	case float64:
		user.UserID = int(id)
	case string:
		if parsed, err := strconv.Atoi(id); err == nil {
			user.UserID = parsed
		}
	}

	if user == (types.SessionUser{}) {
		return types.SessionUser{}, false
	}
	return user, true
}
