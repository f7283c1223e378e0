package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/imobi/client/types"
)

// Login exchanges credentials for a token. It never sends an
// Authorization header.
func (c *Client) Login(ctx context.Context, email, password string) (types.LoginResponse, error) {
	var resp types.LoginResponse
	err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   types.LoginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return types.LoginResponse{}, err
	}
	if strings.TrimSpace(resp.Token) == "" {
		return types.LoginResponse{}, fmt.Errorf("%w: token missing from login response", ErrContractViolation)
	}
	return resp, nil
}

// Me returns the user that owns the session token.
func (c *Client) Me(ctx context.Context) (types.User, error) {
	var user types.User
	raw, err := c.Raw(ctx, Request{Path: "/auth/me", Auth: true})
	if err != nil {
		return types.User{}, err
	}
	if raw == nil {
		return types.User{}, fmt.Errorf("%w: empty /auth/me response", ErrContractViolation)
	}
	if err := decode(raw, &user); err != nil {
		return types.User{}, err
	}
	return user, nil
}
