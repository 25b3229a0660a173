// Package storage provides the small key/value store behind sessions and the
// anonymous prompt history, with memory, Redis and SQLite backends.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flatify/internal/infra"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("storage: key not found")

// KV is a byte-oriented key/value store. A zero ttl keeps the value until it
// is deleted.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds the backend selected by cfg.KVBackend.
func Open(ctx context.Context, cfg *infra.Config) (KV, error) {
	if cfg == nil {
		return nil, errors.New("storage: config is required")
	}
	switch cfg.KVBackend {
	case infra.KVBackendRedis:
		return NewRedisKV(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case infra.KVBackendSQLite:
		return NewSQLiteKV(ctx, cfg.KVSQLitePath)
	case infra.KVBackendMemory, "":
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("storage: unsupported backend %q", cfg.KVBackend)
	}
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("storage: key is required")
	}
	return nil
}
