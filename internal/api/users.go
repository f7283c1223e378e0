package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/imobi/client/types"
)

// CreateUser registers an account. The session token is attached when
// present since only administrators may create brokers.
func (c *Client) CreateUser(ctx context.Context, user types.NewUser) (types.User, error) {
	raw, err := c.Raw(ctx, Request{
		Method: http.MethodPost,
		Path:   "/users",
		Body:   user,
		Auth:   true,
	})
	if err != nil {
		return types.User{}, err
	}
	if raw == nil {
		return types.User{}, fmt.Errorf("%w: empty /users response", ErrContractViolation)
	}
	var created types.User
	if err := decode(raw, &created); err != nil {
		return types.User{}, err
	}
	return created, nil
}

// ListUsers returns all accounts.
func (c *Client) ListUsers(ctx context.Context) ([]types.User, error) {
	items := []types.User{}
	if err := c.Do(ctx, Request{Path: "/users", Auth: true}, &items); err != nil {
		return nil, err
	}
	return items, nil
}
