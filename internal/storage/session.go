package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"flatify/internal/domain"
)

// SessionStore implements domain.SessionRepository over a KV. Every save
// renews the TTL.
type SessionStore struct {
	kv  KV
	ttl time.Duration
	now func() time.Time
}

func NewSessionStore(kv KV, ttl time.Duration) *SessionStore {
	return &SessionStore{kv: kv, ttl: ttl, now: time.Now}
}

var _ domain.SessionRepository = (*SessionStore)(nil)

func sessionKey(id string) string { return "session:" + id }

func (s *SessionStore) Create(ctx context.Context) (*domain.Session, error) {
	now := s.now().UTC()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		Role:      domain.RoleNone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get returns domain.ErrNotFound for unknown, expired or malformed ids.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	raw, err := s.kv.Get(ctx, sessionKey(id))
	if errors.Is(err, ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	if sess == nil || sess.ID == "" {
		return fmt.Errorf("%w: session id is required", domain.ErrValidation)
	}
	sess.UpdatedAt = s.now().UTC()
	return s.put(ctx, sess)
}

func (s *SessionStore) put(ctx context.Context, sess *domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, sessionKey(sess.ID), raw, s.ttl); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}
