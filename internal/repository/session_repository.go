package repository

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/farellandr/sponzo/internal/models"
	"github.com/farellandr/sponzo/internal/store"
)

// SessionRepository holds a single "current user" slot.
type SessionRepository struct {
	store store.Store
	key   string
}

func NewSessionRepository(s store.Store) *SessionRepository {
	return &SessionRepository{store: s, key: KeySession}
}

func (r *SessionRepository) Current(ctx context.Context) (*models.Account, error) {
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, models.ErrNoSession
	}
	var account models.Account
	if err := json.Unmarshal([]byte(raw), &account); err != nil {
		return nil, fmt.Errorf("%w: key %q: %v", models.ErrCorruptState, r.key, err)
	}
	return &account, nil
}

// Set overwrites the slot. The password hash is never written to it.
func (r *SessionRepository) Set(ctx context.Context, account models.Account) error {
	raw, err := json.Marshal(account.Public())
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.store.Set(ctx, r.key, string(raw))
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, r.key)
}
