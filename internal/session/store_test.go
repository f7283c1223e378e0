package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imobi/client/config"
	"github.com/imobi/client/types"
)

type failingBackend struct {
	*MemoryBackend
	failKeys map[string]bool
}

func (f *failingBackend) Set(ctx context.Context, key, value string) error {
	if f.failKeys[key] {
		return errors.New("quota exceeded")
	}
	return f.MemoryBackend.Set(ctx, key, value)
}

func (f *failingBackend) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failKeys["get:"+key] {
		return "", false, errors.New("storage unavailable")
	}
	return f.MemoryBackend.Get(ctx, key)
}

func TestSetSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend(), nil)

	require.NoError(t, store.SetSession(ctx, types.Session{Token: "t1", Role: "ADMIN"}))

	token, ok := store.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, "t1", token)

	user := store.CurrentUser(ctx)
	require.NotNil(t, user)
	assert.Equal(t, "ADMIN", user.Role)
}

func TestSetSessionAllFields(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend(), nil)

	require.NoError(t, store.SetSession(ctx, types.Session{
		Token:  "t2",
		Role:   types.RoleCorretor,
		Name:   "Bia",
		Email:  "bia@imobi.dev",
		UserID: 42,
	}))

	assert.Equal(t, &types.SessionUser{
		Role:   types.RoleCorretor,
		Name:   "Bia",
		Email:  "bia@imobi.dev",
		UserID: 42,
	}, store.CurrentUser(ctx))
}

func TestSetSessionRequiresToken(t *testing.T) {
	store := NewStore(NewMemoryBackend(), nil)
	assert.Error(t, store.SetSession(context.Background(), types.Session{Role: "ADMIN"}))
}

func TestSetSessionPartialFailureKeepsToken(t *testing.T) {
	ctx := context.Background()
	backend := &failingBackend{MemoryBackend: NewMemoryBackend(), failKeys: map[string]bool{KeyName: true}}
	store := NewStore(backend, nil)

	err := store.SetSession(ctx, types.Session{Token: "t3", Name: "Ana", Role: "ADMIN"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyName)

	token, ok := store.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, "t3", token)
	assert.Equal(t, "ADMIN", store.CurrentUser(ctx).Role)
}

func TestTokenNeverFails(t *testing.T) {
	ctx := context.Background()
	backend := &failingBackend{MemoryBackend: NewMemoryBackend(), failKeys: map[string]bool{"get:" + KeyToken: true}}
	store := NewStore(backend, nil)

	token, ok := store.Token(ctx)
	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestCurrentUserAbsentWithoutIdentity(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend(), nil)
	assert.Nil(t, store.CurrentUser(ctx))

	require.NoError(t, store.SetSession(ctx, types.Session{Token: "only-token"}))
	assert.Nil(t, store.CurrentUser(ctx))
}

func TestClearSession(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	store := NewStore(backend, nil)

	require.NoError(t, store.SetSession(ctx, types.Session{Token: "t", Role: "ADMIN", Name: "A", Email: "a@b.c", UserID: 1}))
	require.NoError(t, store.ClearSession(ctx))

	_, ok := store.Token(ctx)
	assert.False(t, ok)
	assert.Nil(t, store.CurrentUser(ctx))
	for _, key := range allKeys {
		_, ok, err := backend.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
}

func TestScopeIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	shared := NewMemoryBackend()
	first := NewStore(Scope(shared, "a:"), nil)
	second := NewStore(Scope(shared, "b:"), nil)

	require.NoError(t, first.SetSession(ctx, types.Session{Token: "ta", Role: "ADMIN"}))

	_, ok := second.Token(ctx)
	assert.False(t, ok)

	require.NoError(t, second.SetSession(ctx, types.Session{Token: "tb"}))
	require.NoError(t, first.ClearSession(ctx))

	token, ok := second.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, "tb", token)
}

func TestFileBackendPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	require.NoError(t, NewStore(NewFileBackend(path), nil).SetSession(ctx, types.Session{Token: "file-token", Email: "a@b.c"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened := NewStore(NewFileBackend(path), nil)
	token, ok := reopened.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, "file-token", token)
	assert.Equal(t, "a@b.c", reopened.CurrentUser(ctx).Email)

	require.NoError(t, reopened.ClearSession(ctx))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileBackendCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))

	_, _, err := NewFileBackend(path).Get(context.Background(), KeyToken)
	assert.Error(t, err)

	_, ok := NewStore(NewFileBackend(path), nil).Token(context.Background())
	assert.False(t, ok)
}

func TestRedisBackend(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	backend, err := NewRedisBackend(ctx, config.RedisConfig{Addr: addr}, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	store := NewStore(Scope(backend, "test:"+t.Name()+":"), nil)
	require.NoError(t, store.SetSession(ctx, types.Session{Token: "redis-token", Role: "CORRETOR"}))

	token, ok := store.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, "redis-token", token)
	assert.Equal(t, "CORRETOR", store.CurrentUser(ctx).Role)

	require.NoError(t, store.ClearSession(ctx))
	_, ok = store.Token(ctx)
	assert.False(t, ok)
}

func TestNewRedisBackendRequiresAddr(t *testing.T) {
	_, err := NewRedisBackend(context.Background(), config.RedisConfig{}, 0)
	assert.Error(t, err)
}

func TestIdentityFromToken(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  "ana@imobi.dev",
		"role": "ADMIN",
		"uid":  7,
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unknown-to-client"))
	require.NoError(t, err)

	user, ok := IdentityFromToken(token)
	require.True(t, ok)
	assert.Equal(t, types.SessionUser{Role: "ADMIN", Email: "ana@imobi.dev", UserID: 7}, user)

	_, ok = IdentityFromToken("opaque-token")
	assert.False(t, ok)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	backend, closeFn, err := Open(ctx, config.SessionConfig{Backend: config.SessionBackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryBackend{}, backend)
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "s.json")
	backend, _, err = Open(ctx, config.SessionConfig{Backend: config.SessionBackendFile, File: path})
	require.NoError(t, err)
	assert.Equal(t, path, backend.(*FileBackend).Path())

	_, closeFn, err = Open(ctx, config.SessionConfig{Backend: "cookie"})
	assert.Error(t, err)
	assert.NotNil(t, closeFn)
}
