package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farellandr/sponzo/internal/models"
)

func TestProposalService_Submit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	proposal, err := f.proposalSvc.Submit(ctx, f.brand, SubmitProposalInput{
		EventID:        "event-1",
		ProposedAmount: 10000,
		Message:        "Booth and banner",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProposalPending, proposal.Status)
	assert.Equal(t, "TechCorp Inc.", proposal.BrandName)
	assert.Contains(t, proposal.ID, "proposal-")

	again, err := f.proposalSvc.Submit(ctx, f.brand, SubmitProposalInput{EventID: "event-1", ProposedAmount: 5000})
	require.NoError(t, err)
	assert.NotEqual(t, proposal.ID, again.ID)

	mine, err := f.proposalSvc.ListByBrand(ctx, f.brand, "brand-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestProposalService_SubmitRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.proposalSvc.Submit(ctx, f.student, SubmitProposalInput{EventID: "event-1", ProposedAmount: 100})
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = f.proposalSvc.Submit(ctx, f.brand, SubmitProposalInput{EventID: "event-1", ProposedAmount: 0})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = f.proposalSvc.Submit(ctx, f.brand, SubmitProposalInput{EventID: "event-404", ProposedAmount: 100})
	assert.ErrorIs(t, err, models.ErrNotFound)

	pending, err := f.eventSvc.Create(ctx, f.organizer, validEventInput())
	require.NoError(t, err)
	_, err = f.proposalSvc.Submit(ctx, f.brand, SubmitProposalInput{EventID: pending.ID, ProposedAmount: 100})
	assert.ErrorIs(t, err, models.ErrNotFound)

	all, err := f.proposals.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProposalService_Listing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.proposalSvc.Submit(ctx, f.brand, SubmitProposalInput{EventID: "event-2", ProposedAmount: 700})
	require.NoError(t, err)

	byEvent, err := f.proposalSvc.ListByEvent(ctx, f.organizer, "event-2")
	require.NoError(t, err)
	assert.Len(t, byEvent, 1)

	_, err = f.proposalSvc.ListByEvent(ctx, f.brand, "event-2")
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = f.proposalSvc.ListByBrand(ctx, f.student, "brand-1")
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = f.proposalSvc.ListAll(ctx, f.brand)
	assert.ErrorIs(t, err, models.ErrForbidden)
	all, err := f.proposalSvc.ListAll(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProposalService_DecideAcceptCreditsEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.proposalSvc.Submit(ctx, f.brand, SubmitProposalInput{EventID: "event-1", ProposedAmount: 10000})
	require.NoError(t, err)
	second, err := f.proposalSvc.Submit(ctx, f.brand, SubmitProposalInput{EventID: "event-1", ProposedAmount: 2500})
	require.NoError(t, err)

	_, err = f.proposalSvc.Decide(ctx, f.brand, first.ID, true)
	assert.ErrorIs(t, err, models.ErrForbidden)

	accepted, err := f.proposalSvc.Decide(ctx, f.organizer, first.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalAccepted, accepted.Status)

	_, err = f.proposalSvc.Decide(ctx, f.admin, second.ID, true)
	require.NoError(t, err)

	event, err := f.events.FindByID(ctx, "event-1")
	require.NoError(t, err)
	require.NotNil(t, event.SponsorshipReceived)
	assert.Equal(t, int64(12500), *event.SponsorshipReceived)
	assert.Equal(t, []string{"brand-1"}, event.SponsoredBy)

	_, err = f.proposalSvc.Decide(ctx, f.organizer, first.ID, false)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestProposalService_DecideReject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	proposal, err := f.proposalSvc.Submit(ctx, f.brand, SubmitProposalInput{EventID: "event-2", ProposedAmount: 900})
	require.NoError(t, err)

	rejected, err := f.proposalSvc.Decide(ctx, f.organizer, proposal.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalRejected, rejected.Status)

	event, err := f.events.FindByID(ctx, "event-2")
	require.NoError(t, err)
	assert.Nil(t, event.SponsorshipReceived)
	assert.Empty(t, event.SponsoredBy)

	_, err = f.proposalSvc.Decide(ctx, f.organizer, "proposal-404", true)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
