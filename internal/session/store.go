// Package session persists the client's authentication state and
// derives access decisions from it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/imobi/client/types"
)

// Storage keys. They match what the browser front-end keeps in
// localStorage, so a file exported from one reads in the other.
const (
	KeyToken  = "token"
	KeyRole   = "role"
	KeyName   = "name"
	KeyEmail  = "email"
	KeyUserID = "userId"
)

var allKeys = []string{KeyToken, KeyRole, KeyName, KeyEmail, KeyUserID}

// Store reads and writes the session over a Backend.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// NewStore constructs a Store over backend.
func NewStore(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{backend: backend, logger: logger}
}

// SetSession writes the token and every non-empty user attribute. Each
// field is written on its own: a failing attribute never prevents the
// token from being stored. The returned error joins every failure.
func (s *Store) SetSession(ctx context.Context, sess types.Session) error {
	if strings.TrimSpace(sess.Token) == "" {
		return errors.New("session token is required")
	}

	var errs []error
	if err := s.backend.Set(ctx, KeyToken, sess.Token); err != nil {
		errs = append(errs, fmt.Errorf("store %s: %w", KeyToken, err))
	}

	fields := []struct {
		key   string
		value string
	}{
		{KeyRole, sess.Role},
		{KeyName, sess.Name},
		{KeyEmail, sess.Email},
	}
	if sess.UserID != 0 {
		fields = append(fields, struct {
			key   string
			value string
		}{KeyUserID, strconv.Itoa(sess.UserID)})
	}

	for _, field := range fields {
		if field.value == "" {
			continue
		}
		if err := s.backend.Set(ctx, field.key, field.value); err != nil {
			errs = append(errs, fmt.Errorf("store %s: %w", field.key, err))
		}
	}
	return errors.Join(errs...)
}

// Token returns the stored token. Storage failures read as "no token".
func (s *Store) Token(ctx context.Context) (string, bool) {
	token, ok, err := s.backend.Get(ctx, KeyToken)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read session token", slog.Any("err", err))
		return "", false
	}
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// CurrentUser rebuilds the user view from stored attributes. It returns
// nil when no role or identity data is stored.
func (s *Store) CurrentUser(ctx context.Context) *types.SessionUser {
	user := types.SessionUser{
		Role:  s.read(ctx, KeyRole),
		Name:  s.read(ctx, KeyName),
		Email: s.read(ctx, KeyEmail),
	}
	if raw := s.read(ctx, KeyUserID); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			user.UserID = id
		}
	}

	if user == (types.SessionUser{}) {
		return nil
	}
	return &user
}

// ClearSession removes every session field.
func (s *Store) ClearSession(ctx context.Context) error {
	return s.backend.Delete(ctx, allKeys...)
}

func (s *Store) read(ctx context.Context, key string) string {
	value, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read session field", slog.String("key", key), slog.Any("err", err))
		return ""
	}
	if !ok {
		return ""
	}
	return value
}
