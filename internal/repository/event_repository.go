package repository

import (
	"context"

	"github.com/farellandr/sponzo/internal/models"
	"github.com/farellandr/sponzo/internal/store"
)

type EventRepository struct {
	c *collection[models.Event]
}

func NewEventRepository(s store.Store) *EventRepository {
	return &EventRepository{c: &collection[models.Event]{
		store:    s,
		key:      KeyEvents,
		resource: "event",
		id:       func(e models.Event) string { return e.ID },
		seed:     seedEvents,
	}}
}

// All returns every event, seeding the default set on first access.
func (r *EventRepository) All(ctx context.Context) ([]models.Event, error) {
	return r.c.all(ctx)
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	return r.c.findByID(ctx, id)
}

func (r *EventRepository) FindByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error) {
	return r.c.filter(ctx, func(e models.Event) bool { return e.OrganizerID == organizerID })
}

func (r *EventRepository) FindByStatus(ctx context.Context, status models.EventStatus) ([]models.Event, error) {
	return r.c.filter(ctx, func(e models.Event) bool { return e.Status == status })
}

func (r *EventRepository) Create(ctx context.Context, event models.Event) error {
	return r.c.add(ctx, event, nil)
}

// Update merges patch into the stored event.
func (r *EventRepository) Update(ctx context.Context, id string, patch models.EventPatch) (*models.Event, error) {
	return r.c.modify(ctx, id, func(e *models.Event) error {
		patch.Apply(e)
		return nil
	})
}

// Modify runs fn against the stored event atomically; fn's error aborts the write.
func (r *EventRepository) Modify(ctx context.Context, id string, fn func(e *models.Event) error) (*models.Event, error) {
	return r.c.modify(ctx, id, fn)
}

func (r *EventRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.c.remove(ctx, id)
}

// ReserveTicket checks and decrements available_tickets in a single store
// update. It returns models.ErrSoldOut when nothing is left.
func (r *EventRepository) ReserveTicket(ctx context.Context, id string) (*models.Event, error) {
	return r.c.modify(ctx, id, func(e *models.Event) error {
		if e.AvailableTickets == nil || *e.AvailableTickets <= 0 {
			return models.ErrSoldOut
		}
		left := *e.AvailableTickets - 1
		e.AvailableTickets = &left
		return nil
	})
}

// ReleaseTicket gives one reserved ticket back to the event.
func (r *EventRepository) ReleaseTicket(ctx context.Context, id string) (*models.Event, error) {
	return r.c.modify(ctx, id, func(e *models.Event) error {
		left := 1
		if e.AvailableTickets != nil {
			left = *e.AvailableTickets + 1
		}
		e.AvailableTickets = &left
		return nil
	})
}
