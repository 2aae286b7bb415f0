package repository

import (
	"context"

	"github.com/farellandr/sponzo/internal/models"
	"github.com/farellandr/sponzo/internal/store"
)

type TicketRepository struct {
	c *collection[models.Ticket]
}

func NewTicketRepository(s store.Store) *TicketRepository {
	return &TicketRepository{c: &collection[models.Ticket]{
		store:    s,
		key:      KeyTickets,
		resource: "ticket",
		id:       func(t models.Ticket) string { return t.ID },
	}}
}

func (r *TicketRepository) All(ctx context.Context) ([]models.Ticket, error) {
	return r.c.all(ctx)
}

func (r *TicketRepository) FindByID(ctx context.Context, id string) (*models.Ticket, error) {
	return r.c.findByID(ctx, id)
}

func (r *TicketRepository) FindByStudent(ctx context.Context, studentID string) ([]models.Ticket, error) {
	return r.c.filter(ctx, func(t models.Ticket) bool { return t.StudentID == studentID })
}

func (r *TicketRepository) FindByEvent(ctx context.Context, eventID string) ([]models.Ticket, error) {
	return r.c.filter(ctx, func(t models.Ticket) bool { return t.EventID == eventID })
}

func (r *TicketRepository) Create(ctx context.Context, ticket models.Ticket) error {
	return r.c.add(ctx, ticket, nil)
}

// UpdateStatus moves a ticket from one status to another. It returns
// models.ErrInvalidTransition when the stored status is not from.
func (r *TicketRepository) UpdateStatus(ctx context.Context, id string, from, to models.TicketStatus) (*models.Ticket, error) {
	return r.c.modify(ctx, id, func(t *models.Ticket) error {
		if t.Status != from {
			return models.ErrInvalidTransition
		}
		t.Status = to
		return nil
	})
}
