package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/imobi/client/internal/api"
	"github.com/imobi/client/internal/session"
	"github.com/imobi/client/types"
)

// AuthAPI is the part of the API client the login flow needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (types.LoginResponse, error)
	Me(ctx context.Context) (types.User, error)
}

// AuthService encapsulates login and logout.
type AuthService struct {
	api      AuthAPI
	sessions *session.Store
	logger   *slog.Logger
}

// NewAuthService constructs an AuthService. api must read its token
// from sessions.
func NewAuthService(api AuthAPI, sessions *session.Store, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{api: api, sessions: sessions, logger: logger}
}

// Login authenticates, persists the session and returns where the user
// should go next: redirect when it is a safe local path, else the
// landing route for the user's role.
func (s *AuthService) Login(ctx context.Context, email, password, redirect string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", required("email")
	}
	if password == "" {
		return "", required("password")
	}

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return "", err
	}

	sess := types.Session{Token: resp.Token, Email: email}
	if resp.User != nil {
		sess.Role = resp.User.Role
		sess.Name = resp.User.Name
		sess.UserID = resp.User.ID
		if resp.User.Email != "" {
			sess.Email = resp.User.Email
		}
	} else if claims, ok := session.IdentityFromToken(resp.Token); ok {
		sess.Role = claims.Role
		sess.Name = claims.Name
		sess.UserID = claims.UserID
	}

	// A new login replaces the previous user entirely; attributes the new
	// login does not supply must not survive from the old one.
	if err := s.sessions.ClearSession(ctx); err != nil {
		s.logger.WarnContext(ctx, "previous session not cleared", slog.Any("err", err))
	}
	if err := s.sessions.SetSession(ctx, sess); err != nil {
		if _, ok := s.sessions.Token(ctx); !ok {
			return "", err
		}
		s.logger.WarnContext(ctx, "session stored partially", slog.Any("err", err))
	}

	if sess.Role == "" {
		s.fillFromMe(ctx)
	}

	return session.SafeRedirect(redirect, session.ResolveLandingRoute(s.sessions.CurrentUser(ctx))), nil
}

// fillFromMe completes the session with /auth/me. Failures only cost the
// role-based landing route, so they are logged and dropped.
func (s *AuthService) fillFromMe(ctx context.Context) {
	user, err := s.api.Me(ctx)
	if err != nil {
		s.logger.InfoContext(ctx, "could not load current user", slog.Any("err", err))
		return
	}
	token, ok := s.sessions.Token(ctx)
	if !ok {
		return
	}
	sess := types.Session{Token: token, Role: user.Role, Name: user.Name, Email: user.Email, UserID: user.ID}
	if err := s.sessions.SetSession(ctx, sess); err != nil {
		s.logger.WarnContext(ctx, "session stored partially", slog.Any("err", err))
	}
}

// Logout clears the session.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.ClearSession(ctx)
}

// CurrentUser returns the stored user view, or nil.
func (s *AuthService) CurrentUser(ctx context.Context) *types.SessionUser {
	return s.sessions.CurrentUser(ctx)
}

// Authenticated reports whether a token is stored.
func (s *AuthService) Authenticated(ctx context.Context) bool {
	_, ok := s.sessions.Token(ctx)
	return ok
}

// IsNotAuthenticated reports whether err means the caller has no valid
// session, either locally or according to the API.
func IsNotAuthenticated(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) || errors.Is(err, api.ErrUnauthorized)
}
