package services

import (
	"context"
	"errors"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/farellandr/sponzo/internal/helpers"
	"github.com/farellandr/sponzo/internal/logging"
	"github.com/farellandr/sponzo/internal/metrics"
	"github.com/farellandr/sponzo/internal/models"
)

const qrSize = 256

type TicketService struct {
	tickets TicketRepository
	events  EventRepository
	signer  *helpers.TicketSigner
	now     func() time.Time
}

func NewTicketService(tickets TicketRepository, events EventRepository, signer *helpers.TicketSigner) *TicketService {
	return &TicketService{tickets: tickets, events: events, signer: signer, now: time.Now}
}

// Purchase issues one ticket for an approved event.
//
// The inventory is reserved before the ticket is written, each in its own
// atomic update. A failed write gives the reservation back, so a crash in
// between can only leave a ticket unsold, never sell one twice.
func (s *TicketService) Purchase(ctx context.Context, caller *models.Account, eventID string) (*models.Ticket, error) {
	if err := requireRole(caller, models.RoleStudent); err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx).With().Str("event_id", eventID).Str("student_id", caller.ID).Logger()

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		metrics.TicketPurchase("error")
		return nil, err
	}
	if event.Status != models.EventApproved {
		metrics.TicketPurchase("error")
		return nil, models.NewNotFoundError("event", eventID)
	}

	event, err = s.events.ReserveTicket(ctx, eventID)
	if errors.Is(err, models.ErrSoldOut) {
		metrics.TicketPurchase("sold_out")
		log.Info().Msg("ticket purchase rejected: sold out")
		return nil, err
	}
	if err != nil {
		metrics.TicketPurchase("error")
		return nil, err
	}

	var price int64
	if event.TicketPrice != nil {
		price = *event.TicketPrice
	}
	ticket := models.Ticket{
		ID:           newID("ticket"),
		EventID:      event.ID,
		StudentID:    caller.ID,
		StudentName:  caller.Name,
		PurchaseDate: s.now().UTC(),
		Price:        price,
		Status:       models.TicketActive,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		metrics.TicketPurchase("error")
		if _, releaseErr := s.events.ReleaseTicket(ctx, eventID); releaseErr != nil {
			log.Error().Err(releaseErr).Msg("release reserved ticket")
		}
		return nil, err
	}

	metrics.TicketPurchase("success")
	log.Info().Str("ticket_id", ticket.ID).Int("remaining", *event.AvailableTickets).Msg("ticket purchased")
	return &ticket, nil
}

func (s *TicketService) ListAll(ctx context.Context, caller *models.Account) ([]models.Ticket, error) {
	if err := requireRole(caller, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.tickets.All(ctx)
}

func (s *TicketService) ListByStudent(ctx context.Context, caller *models.Account, studentID string) ([]models.Ticket, error) {
	if !canActAs(caller, studentID) {
		return nil, models.ErrForbidden
	}
	return s.tickets.FindByStudent(ctx, studentID)
}

func (s *TicketService) ListByEvent(ctx context.Context, caller *models.Account, eventID string) ([]models.Ticket, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !canManageEvent(caller, event) {
		return nil, models.ErrForbidden
	}
	return s.tickets.FindByEvent(ctx, eventID)
}

// Cancel marks an active ticket cancelled and returns its seat to the event.
func (s *TicketService) Cancel(ctx context.Context, caller *models.Account, id string) (*models.Ticket, error) {
	current, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller == nil || current.StudentID != caller.ID {
		return nil, models.ErrForbidden
	}
	ticket, err := s.tickets.UpdateStatus(ctx, id, models.TicketActive, models.TicketCancelled)
	if err != nil {
		return nil, err
	}

	if _, err := s.events.ReleaseTicket(ctx, ticket.EventID); err != nil && !errors.Is(err, models.ErrNotFound) {
		return ticket, err
	}
	logging.FromContext(ctx).Info().Str("ticket_id", id).Str("event_id", ticket.EventID).Msg("ticket cancelled")
	return ticket, nil
}

// Code returns the signed payload encoded in the ticket's QR code.
func (s *TicketService) Code(ctx context.Context, caller *models.Account, id string) (string, error) {
	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if caller == nil || ticket.StudentID != caller.ID {
		return "", models.ErrForbidden
	}
	if ticket.Status != models.TicketActive {
		return "", models.ErrInvalidTransition
	}
	return s.signer.Encode(ticket.ID, ticket.EventID, ticket.StudentID), nil
}

// QRCode renders Code as a PNG.
func (s *TicketService) QRCode(ctx context.Context, caller *models.Account, id string) ([]byte, error) {
	payload, err := s.Code(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(payload, qrcode.Medium, qrSize)
}

// Validate checks a scanned payload at the door and marks the ticket used.
// Only the organizer of the ticket's event (or an admin) may validate it.
func (s *TicketService) Validate(ctx context.Context, caller *models.Account, payload string) (*models.Ticket, error) {
	code, err := s.signer.Decode(payload)
	if err != nil {
		return nil, err
	}
	event, err := s.events.FindByID(ctx, code.EventID)
	if err != nil {
		return nil, err
	}
	if !canManageEvent(caller, event) {
		return nil, models.ErrForbidden
	}

	current, err := s.tickets.FindByID(ctx, code.TicketID)
	if err != nil {
		return nil, err
	}
	if current.EventID != code.EventID || current.StudentID != code.StudentID {
		return nil, models.ErrInvalidTicketCode
	}
	ticket, err := s.tickets.UpdateStatus(ctx, code.TicketID, models.TicketActive, models.TicketUsed)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info().Str("ticket_id", ticket.ID).Str("validated_by", caller.ID).Msg("ticket validated")
	return ticket, nil
}
