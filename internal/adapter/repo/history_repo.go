package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"flatify/internal/domain"
	"flatify/internal/history"
	"flatify/internal/infra"
	"flatify/internal/sqlinline"
)

// HistoryRepositoryPG keeps prompt history embedded in the users row.
// Appends are read-modify-write; concurrent appends for one user resolve
// as last writer wins.
type HistoryRepositoryPG struct {
	sql   infra.SQLExecutor
	limit int
}

// NewHistoryRepository returns the server-side history backend capped at
// history.ServerLimit entries.
func NewHistoryRepository(sql infra.SQLExecutor) *HistoryRepositoryPG {
	return &HistoryRepositoryPG{sql: sql, limit: history.ServerLimit}
}

var _ domain.HistoryBackend = (*HistoryRepositoryPG)(nil)

func (r *HistoryRepositoryPG) Get(ctx context.Context, userID string) ([]string, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrInvalidOwnerID
	}
	var raw []byte
	if err := r.sql.QueryRow(ctx, sqlinline.QSelectPromptHistory, userID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select prompt history: %w", err)
	}
	return decodeHistory(raw)
}

func (r *HistoryRepositoryPG) Append(ctx context.Context, userID, prompt string) ([]string, error) {
	current, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	next := history.Push(current, prompt, r.limit)
	return r.store(ctx, userID, next)
}

// Clear is idempotent and succeeds for a user with no record.
func (r *HistoryRepositoryPG) Clear(ctx context.Context, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.ErrInvalidOwnerID
	}
	if _, err := r.store(ctx, userID, []string{}); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func (r *HistoryRepositoryPG) store(ctx context.Context, userID string, list []string) ([]string, error) {
	payload, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	var raw []byte
	if err := r.sql.QueryRow(ctx, sqlinline.QUpdatePromptHistory, userID, string(payload)).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update prompt history: %w", err)
	}
	return decodeHistory(raw)
}
