package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/farellandr/sponzo/internal/helpers"
	"github.com/farellandr/sponzo/internal/models"
	"github.com/farellandr/sponzo/internal/repository"
	"github.com/farellandr/sponzo/internal/store"
)

type fixture struct {
	store     store.Store
	accounts  *repository.AccountRepository
	events    *repository.EventRepository
	proposals *repository.ProposalRepository
	tickets   *repository.TicketRepository

	auth        *AuthService
	sessions    *SessionManager
	eventSvc    *EventService
	proposalSvc *ProposalService
	ticketSvc   *TicketService
	admin       *models.Account
	organizer   *models.Account
	brand       *models.Account
	student     *models.Account
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithStore(t, store.NewMemoryStore())
}

func newFixtureWithStore(t *testing.T, s store.Store) *fixture {
	t.Helper()
	f := &fixture{
		store:     s,
		accounts:  repository.NewAccountRepository(s),
		events:    repository.NewEventRepository(s),
		proposals: repository.NewProposalRepository(s),
		tickets:   repository.NewTicketRepository(s),
	}
	f.auth = NewAuthService(f.accounts, AuthOptions{VerifyPasswords: true, HashCost: bcrypt.MinCost})
	f.sessions = NewSessionManager(f.auth, repository.NewSessionRepository(s))
	f.eventSvc = NewEventService(f.events)
	f.proposalSvc = NewProposalService(f.proposals, f.events)
	f.ticketSvc = NewTicketService(f.tickets, f.events, helpers.NewTicketSigner("test-secret"))

	ctx := context.Background()
	f.admin = f.account(ctx, t, "admin-1")
	f.organizer = f.account(ctx, t, "organizer-1")
	f.brand = f.account(ctx, t, "brand-1")
	f.student = f.account(ctx, t, "student-1")
	return f
}

func (f *fixture) account(ctx context.Context, t *testing.T, id string) *models.Account {
	t.Helper()
	account, err := f.accounts.FindByID(ctx, id)
	require.NoError(t, err)
	return account
}

// createApprovedEvent creates an event as the seeded organizer and approves it.
func (f *fixture) createApprovedEvent(t *testing.T, tickets int) *models.Event {
	t.Helper()
	ctx := context.Background()
	price := int64(20)
	event, err := f.eventSvc.Create(ctx, f.organizer, CreateEventInput{
		Title:                     "Hack Night",
		Description:               "Overnight hackathon",
		Category:                  models.CategoryHackathon,
		Date:                      "2025-06-01",
		Location:                  "Stata Center",
		ExpectedAttendees:         500,
		ExpectedSponsorshipAmount: 50000,
		TargetAudience:            []string{"Students"},
		TicketPrice:               &price,
		AvailableTickets:          &tickets,
	})
	require.NoError(t, err)
	event, err = f.eventSvc.SetStatus(ctx, f.admin, event.ID, models.EventApproved)
	require.NoError(t, err)
	return event
}
