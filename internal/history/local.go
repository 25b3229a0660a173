package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"flatify/internal/domain"
	"flatify/internal/storage"
)

// LocalBackend keeps history for visitors without an account, keyed by
// session id. It is never merged with the server-side history.
type LocalBackend struct {
	kv    storage.KV
	ttl   time.Duration
	limit int
}

func NewLocalBackend(kv storage.KV, ttl time.Duration) *LocalBackend {
	return &LocalBackend{kv: kv, ttl: ttl, limit: LocalLimit}
}

var _ domain.HistoryBackend = (*LocalBackend)(nil)

func localKey(sessionID string) string { return "history:" + sessionID }

// Get returns an empty list for a session that has no history yet.
func (b *LocalBackend) Get(ctx context.Context, sessionID string) ([]string, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", domain.ErrValidation)
	}
	raw, err := b.kv.Get(ctx, localKey(sessionID))
	if errors.Is(err, storage.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load local history: %w", err)
	}
	list := []string{}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode local history: %w", err)
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

func (b *LocalBackend) Append(ctx context.Context, sessionID, prompt string) ([]string, error) {
	current, err := b.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	next := Push(current, prompt, b.limit)
	raw, err := json.Marshal(next)
	if err != nil {
		return nil, err
	}
	if err := b.kv.Set(ctx, localKey(sessionID), raw, b.ttl); err != nil {
		return nil, fmt.Errorf("store local history: %w", err)
	}
	return next, nil
}

func (b *LocalBackend) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: session id is required", domain.ErrValidation)
	}
	return b.kv.Delete(ctx, localKey(sessionID))
}
