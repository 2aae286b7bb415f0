// Package repository maps each entity collection onto one key of the
// persistent store. Every read decodes the whole collection again; nothing is
// cached between calls.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/farellandr/sponzo/internal/models"
	"github.com/farellandr/sponzo/internal/store"
)

const (
	KeyAccounts  = "accounts"
	KeySession   = "session"
	KeyEvents    = "events"
	KeyProposals = "proposals"
	KeyTickets   = "tickets"
)

// errUnchanged aborts a store update that would not change anything.
var errUnchanged = errors.New("unchanged")

type collection[T any] struct {
	store    store.Store
	key      string
	resource string
	id       func(T) string
	// seed provides the initial contents when the key is absent. nil means empty.
	seed func() []T
}

func (c *collection[T]) decode(raw string) ([]T, error) {
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: key %q: %v", models.ErrCorruptState, c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *collection[T]) initial() []T {
	if c.seed == nil {
		return []T{}
	}
	return c.seed()
}

func (c *collection[T]) all(ctx context.Context) ([]T, error) {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	if ok {
		return c.decode(raw)
	}
	if c.seed == nil {
		return []T{}, nil
	}

	// First access: persist the seed so later writes build on it.
	err = c.mutate(ctx, func(current []T) ([]T, error) {
		return current, nil
	})
	if err != nil {
		return nil, err
	}
	return c.all(ctx)
}

// mutate applies fn to the decoded collection inside one atomic store update.
func (c *collection[T]) mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	return c.store.Update(ctx, c.key, func(current string, ok bool) (string, error) {
		items := c.initial()
		if ok {
			decoded, err := c.decode(current)
			if err != nil {
				return "", err
			}
			items = decoded
		}

		next, err := fn(items)
		if err != nil {
			return "", err
		}
		raw, err := json.Marshal(next)
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", c.key, err)
		}
		return string(raw), nil
	})
}

func (c *collection[T]) filter(ctx context.Context, keep func(T) bool) ([]T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (c *collection[T]) findByID(ctx context.Context, id string) (*T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if c.id(items[i]) == id {
			return &items[i], nil
		}
	}
	return nil, models.NewNotFoundError(c.resource, id)
}

func (c *collection[T]) add(ctx context.Context, item T, check func(items []T) error) error {
	return c.mutate(ctx, func(items []T) ([]T, error) {
		if check != nil {
			if err := check(items); err != nil {
				return nil, err
			}
		}
		return append(items, item), nil
	})
}

// modify runs fn on the stored record with the given id and persists the
// result atomically. An error from fn aborts the write.
func (c *collection[T]) modify(ctx context.Context, id string, fn func(item *T) error) (*T, error) {
	var updated T
	err := c.mutate(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if c.id(items[i]) != id {
				continue
			}
			if err := fn(&items[i]); err != nil {
				return nil, err
			}
			updated = items[i]
			return items, nil
		}
		return nil, models.NewNotFoundError(c.resource, id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *collection[T]) remove(ctx context.Context, id string) (bool, error) {
	err := c.mutate(ctx, func(items []T) ([]T, error) {
		kept := make([]T, 0, len(items))
		for _, item := range items {
			if c.id(item) != id {
				kept = append(kept, item)
			}
		}
		if len(kept) == len(items) {
			return nil, errUnchanged
		}
		return kept, nil
	})
	if errors.Is(err, errUnchanged) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
