package services

import (
	"context"
	"errors"
	"time"

	"github.com/farellandr/sponzo/internal/logging"
	"github.com/farellandr/sponzo/internal/metrics"
	"github.com/farellandr/sponzo/internal/models"
)

type ProposalService struct {
	proposals ProposalRepository
	events    EventRepository
	now       func() time.Time
}

func NewProposalService(proposals ProposalRepository, events EventRepository) *ProposalService {
	return &ProposalService{proposals: proposals, events: events, now: time.Now}
}

type SubmitProposalInput struct {
	EventID        string
	ProposedAmount int64
	Message        string
}

// Submit records a pending proposal from a brand against an approved event.
// A brand may submit any number of proposals to the same event.
func (s *ProposalService) Submit(ctx context.Context, caller *models.Account, in SubmitProposalInput) (*models.Proposal, error) {
	if err := requireRole(caller, models.RoleBrand); err != nil {
		return nil, err
	}
	if in.ProposedAmount <= 0 {
		return nil, models.NewValidationError("proposed_amount", "must be positive")
	}

	event, err := s.events.FindByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	if event.Status != models.EventApproved {
		return nil, models.NewNotFoundError("event", in.EventID)
	}

	brandName := caller.OrganizationName
	if brandName == "" {
		brandName = caller.Name
	}
	proposal := models.Proposal{
		ID:             newID("proposal"),
		EventID:        event.ID,
		BrandID:        caller.ID,
		BrandName:      brandName,
		ProposedAmount: in.ProposedAmount,
		Message:        in.Message,
		Status:         models.ProposalPending,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.proposals.Create(ctx, proposal); err != nil {
		return nil, err
	}

	metrics.Proposal("submitted")
	logging.FromContext(ctx).Info().
		Str("proposal_id", proposal.ID).
		Str("event_id", event.ID).
		Str("brand_id", caller.ID).
		Int64("amount", proposal.ProposedAmount).
		Msg("proposal submitted")
	return &proposal, nil
}

func (s *ProposalService) ListAll(ctx context.Context, caller *models.Account) ([]models.Proposal, error) {
	if err := requireRole(caller, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.proposals.All(ctx)
}

func (s *ProposalService) ListByBrand(ctx context.Context, caller *models.Account, brandID string) ([]models.Proposal, error) {
	if !canActAs(caller, brandID) {
		return nil, models.ErrForbidden
	}
	return s.proposals.FindByBrand(ctx, brandID)
}

// ListByEvent is limited to the event's organizer and admins.
func (s *ProposalService) ListByEvent(ctx context.Context, caller *models.Account, eventID string) ([]models.Proposal, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !canManageEvent(caller, event) {
		return nil, models.ErrForbidden
	}
	return s.proposals.FindByEvent(ctx, eventID)
}

// Decide accepts or rejects a pending proposal. Accepting adds the amount to
// the event's sponsorship_received and the brand to sponsored_by.
//
// The proposal is settled first, then the event is credited. If the second
// write fails the proposal stays accepted without the credit; the error is
// returned so the caller can retry the credit.
func (s *ProposalService) Decide(ctx context.Context, caller *models.Account, id string, accept bool) (*models.Proposal, error) {
	current, err := s.proposals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	event, err := s.events.FindByID(ctx, current.EventID)
	if err != nil {
		return nil, err
	}
	if !canManageEvent(caller, event) {
		return nil, models.ErrForbidden
	}

	next := models.ProposalRejected
	if accept {
		next = models.ProposalAccepted
	}
	proposal, err := s.proposals.UpdateStatus(ctx, id, models.ProposalPending, next)
	if err != nil {
		return nil, err
	}
	metrics.Proposal(string(next))

	log := logging.FromContext(ctx)
	if !accept {
		log.Info().Str("proposal_id", id).Msg("proposal rejected")
		return proposal, nil
	}

	_, err = s.events.Modify(ctx, proposal.EventID, func(e *models.Event) error {
		var total int64
		if e.SponsorshipReceived != nil {
			total = *e.SponsorshipReceived
		}
		total += proposal.ProposedAmount
		e.SponsorshipReceived = &total
		for _, brandID := range e.SponsoredBy {
			if brandID == proposal.BrandID {
				return nil
			}
		}
		e.SponsoredBy = append(e.SponsoredBy, proposal.BrandID)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("proposal_id", id).Str("event_id", proposal.EventID).Msg("credit sponsorship")
		if errors.Is(err, models.ErrNotFound) {
			return proposal, nil
		}
		return proposal, err
	}

	log.Info().Str("proposal_id", id).Str("event_id", proposal.EventID).Int64("amount", proposal.ProposedAmount).Msg("proposal accepted")
	return proposal, nil
}
