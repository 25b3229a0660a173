package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"flatify/internal/domain"
	"flatify/internal/infra"
	"flatify/internal/sqlinline"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(sql infra.SQLExecutor) *UserRepositoryPG {
	return &UserRepositoryPG{sql: sql}
}

var _ domain.UserRepository = (*UserRepositoryPG)(nil)

// UpsertByExternalID inserts or refreshes a user keyed by the identity
// provider's subject. Existing prompt history is left alone.
func (r *UserRepositoryPG) UpsertByExternalID(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil || strings.TrimSpace(user.ExternalID) == "" {
		return nil, fmt.Errorf("%w: external id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(user.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	row := r.sql.QueryRow(ctx, sqlinline.QUpsertUserByExternalID,
		strings.TrimSpace(user.ExternalID),
		strings.TrimSpace(user.Email),
		strings.TrimSpace(user.Name),
		strings.TrimSpace(user.Picture),
	)
	return scanUser(row)
}

// GetByID fetches a user by UUID.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidOwnerID
	}
	row := r.sql.QueryRow(ctx, sqlinline.QSelectUserByID, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u       domain.User
		history []byte
	)
	if err := row.Scan(&u.ID, &u.ExternalID, &u.Email, &u.Name, &u.Picture, &history, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	list, err := decodeHistory(history)
	if err != nil {
		return nil, err
	}
	u.PromptHistory = list
	return &u, nil
}

func decodeHistory(raw []byte) ([]string, error) {
	list := []string{}
	if len(raw) == 0 {
		return list, nil
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode prompt history: %w", err)
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}
