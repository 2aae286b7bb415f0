package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farellandr/sponzo/internal/models"
	"github.com/farellandr/sponzo/internal/store"
)

func TestEventRepository_SeedsOnFirstAccess(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewEventRepository(s)
	ctx := context.Background()

	events, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "event-1", events[0].ID)
	assert.Equal(t, "event-2", events[1].ID)

	_, ok, err := s.Get(ctx, KeyEvents)
	require.NoError(t, err)
	assert.True(t, ok, "seed should be persisted")
}

func TestAccountRepository_SeedsDemoAccounts(t *testing.T) {
	repo := NewAccountRepository(store.NewMemoryStore())

	accounts, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 4)

	admin, err := repo.FindByEmail(context.Background(), "admin@sponzo.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	_, err = repo.FindByEmail(context.Background(), "ADMIN@sponzo.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAccountRepository_CreateRejectsDuplicateEmail(t *testing.T) {
	repo := NewAccountRepository(store.NewMemoryStore())
	ctx := context.Background()

	account := models.Account{ID: "student-x", Email: "x@y.com", Role: models.RoleStudent}
	require.NoError(t, repo.Create(ctx, account))

	account.ID = "student-y"
	assert.ErrorIs(t, repo.Create(ctx, account), models.ErrConflict)

	accounts, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 5)
}

func TestEventRepository_UpdateIsShallow(t *testing.T) {
	repo := NewEventRepository(store.NewMemoryStore())
	ctx := context.Background()

	audience := []string{"Alumni"}
	title := "Tech Summit 2026"
	updated, err := repo.Update(ctx, "event-1", models.EventPatch{Title: &title, TargetAudience: &audience})
	require.NoError(t, err)
	assert.Equal(t, "Tech Summit 2026", updated.Title)
	assert.Equal(t, []string{"Alumni"}, updated.TargetAudience)
	assert.Equal(t, int64(50000), updated.ExpectedSponsorshipAmount)

	_, err = repo.Update(ctx, "event-404", models.EventPatch{Title: &title})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestEventRepository_Delete(t *testing.T) {
	repo := NewEventRepository(store.NewMemoryStore())
	ctx := context.Background()

	removed, err := repo.Delete(ctx, "event-2")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, "event-2")
	require.NoError(t, err)
	assert.False(t, removed)

	events, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestEventRepository_ReserveTicket(t *testing.T) {
	repo := NewEventRepository(store.NewMemoryStore())
	ctx := context.Background()

	one := 1
	require.NoError(t, repo.Create(ctx, models.Event{ID: "event-small", Status: models.EventApproved, AvailableTickets: &one}))
	require.NoError(t, repo.Create(ctx, models.Event{ID: "event-free", Status: models.EventApproved}))

	event, err := repo.ReserveTicket(ctx, "event-small")
	require.NoError(t, err)
	assert.Equal(t, 0, *event.AvailableTickets)

	_, err = repo.ReserveTicket(ctx, "event-small")
	assert.ErrorIs(t, err, models.ErrSoldOut)

	_, err = repo.ReserveTicket(ctx, "event-free")
	assert.ErrorIs(t, err, models.ErrSoldOut)

	_, err = repo.ReserveTicket(ctx, "event-missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	event, err = repo.ReleaseTicket(ctx, "event-small")
	require.NoError(t, err)
	assert.Equal(t, 1, *event.AvailableTickets)
}

func TestCollection_CorruptStateFailsFast(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, KeyTickets, `[{"id": `))
	require.NoError(t, s.Set(ctx, KeySession, `nope`))

	_, err := NewTicketRepository(s).All(ctx)
	assert.ErrorIs(t, err, models.ErrCorruptState)

	err = NewTicketRepository(s).Create(ctx, models.Ticket{ID: "ticket-1"})
	assert.ErrorIs(t, err, models.ErrCorruptState)

	_, err = NewSessionRepository(s).Current(ctx)
	assert.ErrorIs(t, err, models.ErrCorruptState)
}

func TestSessionRepository_SlotLifecycle(t *testing.T) {
	repo := NewSessionRepository(store.NewMemoryStore())
	ctx := context.Background()

	_, err := repo.Current(ctx)
	assert.ErrorIs(t, err, models.ErrNoSession)

	require.NoError(t, repo.Set(ctx, models.Account{ID: "brand-1", Email: "brand@company.com", PasswordHash: "secret"}))
	current, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "brand-1", current.ID)
	assert.Empty(t, current.PasswordHash)

	require.NoError(t, repo.Clear(ctx))
	_, err = repo.Current(ctx)
	assert.ErrorIs(t, err, models.ErrNoSession)
}

func TestRoundTripThroughFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sponzo.json")
	ctx := context.Background()

	first, err := store.NewFileStore(path)
	require.NoError(t, err)

	accounts := NewAccountRepository(first)
	events := NewEventRepository(first)
	proposals := NewProposalRepository(first)
	tickets := NewTicketRepository(first)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, accounts.Create(ctx, models.Account{ID: "brand-2", Email: "b2@co.com", Role: models.RoleBrand, CreatedAt: now}))
	require.NoError(t, proposals.Create(ctx, models.Proposal{ID: "proposal-a", EventID: "event-1", BrandID: "brand-2", ProposedAmount: 1000, Status: models.ProposalPending, CreatedAt: now}))
	require.NoError(t, proposals.Create(ctx, models.Proposal{ID: "proposal-b", EventID: "event-2", BrandID: "brand-2", ProposedAmount: 2000, Status: models.ProposalPending, CreatedAt: now}))
	require.NoError(t, tickets.Create(ctx, models.Ticket{ID: "ticket-a", EventID: "event-1", StudentID: "student-1", Price: 25, Status: models.TicketActive, PurchaseDate: now}))

	wantAccounts, err := accounts.All(ctx)
	require.NoError(t, err)
	wantEvents, err := events.All(ctx)
	require.NoError(t, err)
	wantProposals, err := proposals.All(ctx)
	require.NoError(t, err)
	wantTickets, err := tickets.All(ctx)
	require.NoError(t, err)

	second, err := store.NewFileStore(path)
	require.NoError(t, err)

	gotAccounts, err := NewAccountRepository(second).All(ctx)
	require.NoError(t, err)
	gotEvents, err := NewEventRepository(second).All(ctx)
	require.NoError(t, err)
	gotProposals, err := NewProposalRepository(second).All(ctx)
	require.NoError(t, err)
	gotTickets, err := NewTicketRepository(second).All(ctx)
	require.NoError(t, err)

	assert.Equal(t, wantAccounts, gotAccounts)
	assert.Equal(t, wantEvents, gotEvents)
	assert.Equal(t, wantProposals, gotProposals)
	assert.Equal(t, wantTickets, gotTickets)
	assert.Equal(t, "proposal-a", gotProposals[0].ID)
	assert.Equal(t, "proposal-b", gotProposals[1].ID)

	for _, key := range []string{KeyAccounts, KeyEvents, KeyProposals, KeyTickets} {
		a, _, err := first.Get(ctx, key)
		require.NoError(t, err)
		b, _, err := second.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, a, b, key)
	}
}
