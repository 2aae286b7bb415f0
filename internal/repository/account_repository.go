package repository

import (
	"context"
	"strings"

	"github.com/farellandr/sponzo/internal/models"
	"github.com/farellandr/sponzo/internal/store"
)

type AccountRepository struct {
	c *collection[models.Account]
}

func NewAccountRepository(s store.Store) *AccountRepository {
	return &AccountRepository{c: &collection[models.Account]{
		store:    s,
		key:      KeyAccounts,
		resource: "account",
		id:       func(a models.Account) string { return a.ID },
		seed:     seedAccounts,
	}}
}

func (r *AccountRepository) All(ctx context.Context) ([]models.Account, error) {
	return r.c.all(ctx)
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	return r.c.findByID(ctx, id)
}

// FindByEmail matches the email exactly.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	accounts, err := r.c.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Email == email {
			return &accounts[i], nil
		}
	}
	return nil, models.NewNotFoundError("account", email)
}

// Create appends account unless its email is taken, in which case it returns
// models.ErrConflict and writes nothing.
func (r *AccountRepository) Create(ctx context.Context, account models.Account) error {
	return r.c.add(ctx, account, func(accounts []models.Account) error {
		for _, existing := range accounts {
			if existing.Email == account.Email {
				return models.ErrConflict
			}
		}
		if strings.TrimSpace(account.ID) == "" {
			return models.NewValidationError("id", "must not be empty")
		}
		return nil
	})
}
