package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/farellandr/sponzo/internal/models"
)

type AccountRepository interface {
	All(ctx context.Context) ([]models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, account models.Account) error
}

type SessionRepository interface {
	Current(ctx context.Context) (*models.Account, error)
	Set(ctx context.Context, account models.Account) error
	Clear(ctx context.Context) error
}

type EventRepository interface {
	All(ctx context.Context) ([]models.Event, error)
	FindByID(ctx context.Context, id string) (*models.Event, error)
	FindByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error)
	FindByStatus(ctx context.Context, status models.EventStatus) ([]models.Event, error)
	Create(ctx context.Context, event models.Event) error
	Update(ctx context.Context, id string, patch models.EventPatch) (*models.Event, error)
	Modify(ctx context.Context, id string, fn func(e *models.Event) error) (*models.Event, error)
	Delete(ctx context.Context, id string) (bool, error)
	ReserveTicket(ctx context.Context, id string) (*models.Event, error)
	ReleaseTicket(ctx context.Context, id string) (*models.Event, error)
}

type ProposalRepository interface {
	All(ctx context.Context) ([]models.Proposal, error)
	FindByID(ctx context.Context, id string) (*models.Proposal, error)
	FindByBrand(ctx context.Context, brandID string) ([]models.Proposal, error)
	FindByEvent(ctx context.Context, eventID string) ([]models.Proposal, error)
	Create(ctx context.Context, proposal models.Proposal) error
	UpdateStatus(ctx context.Context, id string, from, to models.ProposalStatus) (*models.Proposal, error)
}

type TicketRepository interface {
	All(ctx context.Context) ([]models.Ticket, error)
	FindByID(ctx context.Context, id string) (*models.Ticket, error)
	FindByStudent(ctx context.Context, studentID string) ([]models.Ticket, error)
	FindByEvent(ctx context.Context, eventID string) ([]models.Ticket, error)
	Create(ctx context.Context, ticket models.Ticket) error
	UpdateStatus(ctx context.Context, id string, from, to models.TicketStatus) (*models.Ticket, error)
}

// newID returns "<prefix>-<uuid>".
func newID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

func requireRole(caller *models.Account, roles ...models.Role) error {
	if !caller.HasRole(roles...) {
		return models.ErrForbidden
	}
	return nil
}

// canManageEvent: admins, and the organizer who owns the event.
func canManageEvent(caller *models.Account, event *models.Event) bool {
	if caller.HasRole(models.RoleAdmin) {
		return true
	}
	return caller.HasRole(models.RoleOrganizer) && event.OrganizerID == caller.ID
}

// canActAs: the account itself, or an admin.
func canActAs(caller *models.Account, accountID string) bool {
	if caller == nil {
		return false
	}
	return caller.ID == accountID || caller.Role == models.RoleAdmin
}
