package session

import (
	"context"
	"fmt"

	"github.com/imobi/client/config"
)

// Open builds the backend selected by cfg. closeFn releases it and is
// never nil.
func Open(ctx context.Context, cfg config.SessionConfig) (backend Backend, closeFn func() error, err error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "", config.SessionBackendFile:
		if cfg.File == "" {
			return nil, noop, fmt.Errorf("session file path is required")
		}
		return NewFileBackend(cfg.File), noop, nil
	case config.SessionBackendMemory:
		return NewMemoryBackend(), noop, nil
	case config.SessionBackendRedis:
		rb, err := NewRedisBackend(ctx, cfg.Redis, cfg.TTL)
		if err != nil {
			return nil, noop, fmt.Errorf("connect redis session backend: %w", err)
		}
		return rb, rb.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
