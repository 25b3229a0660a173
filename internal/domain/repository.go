package domain

import "context"

// UserRepository defines access methods for users.
type UserRepository interface {
	UpsertByExternalID(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// GenerationRepository persists generation records per kind. Records are
// never updated.
type GenerationRepository interface {
	Create(ctx context.Context, gen Generation) (Generation, bool, error)
	ListByOwner(ctx context.Context, kind Kind, ownerID string) ([]Generation, error)
	DeleteByIDAndOwner(ctx context.Context, kind Kind, id, ownerID string) error
}

// HistoryBackend keeps a bounded, deduplicated, most-recent-first prompt list
// per owner. The owner is a user id for the server backend and a session id
// for the local one.
type HistoryBackend interface {
	Get(ctx context.Context, owner string) ([]string, error)
	Append(ctx context.Context, owner, prompt string) ([]string, error)
	Clear(ctx context.Context, owner string) error
}

// SessionRepository loads and stores sessions.
type SessionRepository interface {
	Create(ctx context.Context) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
}
