package services

import (
	"context"
	"strings"
	"time"

	"github.com/farellandr/sponzo/internal/logging"
	"github.com/farellandr/sponzo/internal/models"
)

const dateLayout = "2006-01-02"

type EventService struct {
	events EventRepository
	now    func() time.Time
}

func NewEventService(events EventRepository) *EventService {
	return &EventService{events: events, now: time.Now}
}

type CreateEventInput struct {
	Title                     string
	Description               string
	CollegeName               string
	Category                  models.EventCategory
	Date                      string
	Location                  string
	ExpectedAttendees         int
	ExpectedSponsorshipAmount int64
	TargetAudience            []string
	Benefits                  []string
	ImageURL                  string
	TicketPrice               *int64
	AvailableTickets          *int
}

func (in CreateEventInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return models.NewValidationError("title", "is required")
	}
	if !in.Category.Valid() {
		return models.NewValidationError("category", "unknown category "+string(in.Category))
	}
	if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return models.NewValidationError("date", "must be YYYY-MM-DD")
	}
	if in.ExpectedAttendees <= 0 {
		return models.NewValidationError("expected_attendees", "must be positive")
	}
	if in.ExpectedSponsorshipAmount < 0 {
		return models.NewValidationError("expected_sponsorship_amount", "must not be negative")
	}
	if in.AvailableTickets != nil && *in.AvailableTickets < 0 {
		return models.NewValidationError("available_tickets", "must not be negative")
	}
	if in.TicketPrice != nil && *in.TicketPrice < 0 {
		return models.NewValidationError("ticket_price", "must not be negative")
	}
	return nil
}

// Create stores a new pending event owned by caller.
func (s *EventService) Create(ctx context.Context, caller *models.Account, in CreateEventInput) (*models.Event, error) {
	if err := requireRole(caller, models.RoleOrganizer, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	college := in.CollegeName
	if college == "" {
		college = caller.CollegeName
	}
	event := models.Event{
		ID:                        newID("event"),
		Title:                     strings.TrimSpace(in.Title),
		Description:               in.Description,
		OrganizerID:               caller.ID,
		OrganizerName:             caller.Name,
		CollegeName:               college,
		Category:                  in.Category,
		Date:                      in.Date,
		Location:                  in.Location,
		ExpectedAttendees:         in.ExpectedAttendees,
		ExpectedSponsorshipAmount: in.ExpectedSponsorshipAmount,
		TargetAudience:            nonNil(in.TargetAudience),
		Benefits:                  nonNil(in.Benefits),
		ImageURL:                  in.ImageURL,
		Status:                    models.EventPending,
		CreatedAt:                 s.now().UTC(),
		TicketPrice:               in.TicketPrice,
		AvailableTickets:          in.AvailableTickets,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info().Str("event_id", event.ID).Str("organizer_id", caller.ID).Msg("event created")
	return &event, nil
}

// ListAll returns full records and is reserved to admins.
func (s *EventService) ListAll(ctx context.Context, caller *models.Account) ([]models.Event, error) {
	if err := requireRole(caller, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.events.All(ctx)
}

// Get returns the full record, including the confidential sponsorship target.
func (s *EventService) Get(ctx context.Context, caller *models.Account, id string) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManageEvent(caller, event) {
		return nil, models.ErrForbidden
	}
	return event, nil
}

// GetView returns the public projection of an approved event.
func (s *EventService) GetView(ctx context.Context, id string) (*models.EventView, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != models.EventApproved {
		return nil, models.NewNotFoundError("event", id)
	}
	view := event.View()
	return &view, nil
}

func (s *EventService) ListByOrganizer(ctx context.Context, caller *models.Account, organizerID string) ([]models.Event, error) {
	if !canActAs(caller, organizerID) || !caller.HasRole(models.RoleOrganizer, models.RoleAdmin) {
		return nil, models.ErrForbidden
	}
	return s.events.FindByOrganizer(ctx, organizerID)
}

func (s *EventService) ListForBrands(ctx context.Context, filters *models.EventFilters) ([]models.EventView, error) {
	return s.listApproved(ctx, filters)
}

func (s *EventService) ListForStudents(ctx context.Context, filters *models.EventFilters) ([]models.EventView, error) {
	return s.listApproved(ctx, filters)
}

func (s *EventService) listApproved(ctx context.Context, filters *models.EventFilters) ([]models.EventView, error) {
	events, err := s.events.FindByStatus(ctx, models.EventApproved)
	if err != nil {
		return nil, err
	}
	if filters != nil {
		events = FilterEvents(events, *filters)
	}
	return models.Views(events), nil
}

// Update merges patch into an event. Organizers may edit their own events but
// not the fields driven by approval and sponsorship. A status change must be a
// legal transition, same as SetStatus.
func (s *EventService) Update(ctx context.Context, caller *models.Account, id string, patch models.EventPatch) (*models.Event, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	return s.events.Modify(ctx, id, func(e *models.Event) error {
		if !canManageEvent(caller, e) {
			return models.ErrForbidden
		}
		if !caller.HasRole(models.RoleAdmin) &&
			(patch.Status != nil || patch.SponsorshipReceived != nil || patch.SponsoredBy != nil) {
			return models.ErrForbidden
		}
		if patch.Status != nil && *patch.Status != e.Status && !e.Status.CanTransitionTo(*patch.Status) {
			return models.ErrInvalidTransition
		}
		patch.Apply(e)
		return nil
	})
}

func validatePatch(p models.EventPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return models.NewValidationError("title", "must not be empty")
	}
	if p.Category != nil && !p.Category.Valid() {
		return models.NewValidationError("category", "unknown category "+string(*p.Category))
	}
	if p.Date != nil {
		if _, err := time.Parse(dateLayout, *p.Date); err != nil {
			return models.NewValidationError("date", "must be YYYY-MM-DD")
		}
	}
	if p.ExpectedAttendees != nil && *p.ExpectedAttendees <= 0 {
		return models.NewValidationError("expected_attendees", "must be positive")
	}
	if p.ExpectedSponsorshipAmount != nil && *p.ExpectedSponsorshipAmount < 0 {
		return models.NewValidationError("expected_sponsorship_amount", "must not be negative")
	}
	if p.SponsorshipReceived != nil && *p.SponsorshipReceived < 0 {
		return models.NewValidationError("sponsorship_received", "must not be negative")
	}
	if p.AvailableTickets != nil && *p.AvailableTickets < 0 {
		return models.NewValidationError("available_tickets", "must not be negative")
	}
	if p.TicketPrice != nil && *p.TicketPrice < 0 {
		return models.NewValidationError("ticket_price", "must not be negative")
	}
	if p.Status != nil {
		switch *p.Status {
		case models.EventPending, models.EventApproved, models.EventRejected, models.EventCompleted:
		default:
			return models.NewValidationError("status", "unknown status "+string(*p.Status))
		}
	}
	return nil
}

// SetStatus moves an event along pending -> approved|rejected (admin only) and
// approved -> completed (admin or owner).
func (s *EventService) SetStatus(ctx context.Context, caller *models.Account, id string, status models.EventStatus) (*models.Event, error) {
	event, err := s.events.Modify(ctx, id, func(e *models.Event) error {
		if !e.Status.CanTransitionTo(status) {
			return models.ErrInvalidTransition
		}
		switch status {
		case models.EventCompleted:
			if !canManageEvent(caller, e) {
				return models.ErrForbidden
			}
		default:
			if !caller.HasRole(models.RoleAdmin) {
				return models.ErrForbidden
			}
		}
		e.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info().Str("event_id", id).Str("status", string(status)).Str("by", caller.ID).Msg("event status changed")
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, caller *models.Account, id string) (bool, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !canManageEvent(caller, event) {
		return false, models.ErrForbidden
	}
	return s.events.Delete(ctx, id)
}

// AttachImage records the location of an uploaded event image.
func (s *EventService) AttachImage(ctx context.Context, caller *models.Account, id, imageURL string) (*models.Event, error) {
	return s.events.Modify(ctx, id, func(e *models.Event) error {
		if !canManageEvent(caller, e) {
			return models.ErrForbidden
		}
		e.ImageURL = imageURL
		return nil
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
