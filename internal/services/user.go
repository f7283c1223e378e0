package services

import (
	"context"
	"strings"

	"github.com/imobi/client/types"
)

// UserAPI is the part of the API client account pages need.
type UserAPI interface {
	CreateUser(ctx context.Context, user types.NewUser) (types.User, error)
	ListUsers(ctx context.Context) ([]types.User, error)
}

// UserService encapsulates account use-cases.
type UserService struct {
	api    UserAPI
	tokens TokenChecker
}

func NewUserService(api UserAPI, tokens TokenChecker) *UserService {
	return &UserService{api: api, tokens: tokens}
}

// RegisterBroker creates an account with the broker role. It needs an
// administrator session.
func (s *UserService) RegisterBroker(ctx context.Context, name, email, password string) (types.User, error) {
	if s.tokens == nil {
		return types.User{}, ErrNotAuthenticated
	}
	if _, ok := s.tokens.Token(ctx); !ok {
		return types.User{}, ErrNotAuthenticated
	}

	user := types.NewUser{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
		Role:     types.RoleCorretor,
	}
	if user.Name == "" {
		return types.User{}, required("name")
	}
	if user.Email == "" {
		return types.User{}, required("email")
	}
	if user.Password == "" {
		return types.User{}, required("password")
	}
	return s.api.CreateUser(ctx, user)
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.api.ListUsers(ctx)
}
