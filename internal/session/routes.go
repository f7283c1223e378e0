package session

import (
	"context"
	"net/url"
	"strings"

	"github.com/imobi/client/types"
)

// Landing and entry routes.
const (
	RouteLogin  = "/login"
	RouteAdmin  = "/privado/admin"
	RouteBroker = "/privado/imoveis"
	RoutePublic = "/"
)

// ResolveLandingRoute maps a user's role to the page they land on after
// login. Matching is case-insensitive and by substring, so "ROLE_ADMIN"
// counts as an administrator.
func ResolveLandingRoute(user *types.SessionUser) string {
	if user == nil {
		return RoutePublic
	}
	role := strings.ToUpper(user.Role)
	switch {
	case strings.Contains(role, types.RoleAdmin):
		return RouteAdmin
	case strings.Contains(role, types.RoleCorretor):
		return RouteBroker
	default:
		return RoutePublic
	}
}

// HasRole reports whether user's role contains role, ignoring case.
func HasRole(user *types.SessionUser, role string) bool {
	if user == nil || role == "" {
		return false
	}
	return strings.Contains(strings.ToUpper(user.Role), strings.ToUpper(role))
}

// Decision is the outcome of the auth gate.
type Decision struct {
	Authorized bool
	// Redirect is set when Authorized is false.
	Redirect string
}

// Gate decides whether protected content may be shown. Without a token
// it redirects to the login entry point, carrying returnPath.
func Gate(ctx context.Context, store *Store, returnPath string) Decision {
	if _, ok := store.Token(ctx); ok {
		return Decision{Authorized: true}
	}
	return Decision{Redirect: LoginURL(returnPath)}
}

// LoginURL builds the login entry point with an optional return path.
func LoginURL(returnPath string) string {
	returnPath = strings.TrimSpace(returnPath)
	if returnPath == "" {
		return RouteLogin
	}
	return RouteLogin + "?" + url.Values{"redirect": {returnPath}}.Encode()
}

// SafeRedirect returns target when it is a local absolute path and
// fallback otherwise, so ?redirect cannot send users off-site.
func SafeRedirect(target, fallback string) string {
	target = strings.TrimSpace(target)
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return fallback
	}
	return target
}
