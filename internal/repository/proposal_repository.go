package repository

import (
	"context"

	"github.com/farellandr/sponzo/internal/models"
	"github.com/farellandr/sponzo/internal/store"
)

type ProposalRepository struct {
	c *collection[models.Proposal]
}

func NewProposalRepository(s store.Store) *ProposalRepository {
	return &ProposalRepository{c: &collection[models.Proposal]{
		store:    s,
		key:      KeyProposals,
		resource: "proposal",
		id:       func(p models.Proposal) string { return p.ID },
	}}
}

func (r *ProposalRepository) All(ctx context.Context) ([]models.Proposal, error) {
	return r.c.all(ctx)
}

func (r *ProposalRepository) FindByID(ctx context.Context, id string) (*models.Proposal, error) {
	return r.c.findByID(ctx, id)
}

func (r *ProposalRepository) FindByBrand(ctx context.Context, brandID string) ([]models.Proposal, error) {
	return r.c.filter(ctx, func(p models.Proposal) bool { return p.BrandID == brandID })
}

func (r *ProposalRepository) FindByEvent(ctx context.Context, eventID string) ([]models.Proposal, error) {
	return r.c.filter(ctx, func(p models.Proposal) bool { return p.EventID == eventID })
}

func (r *ProposalRepository) Create(ctx context.Context, proposal models.Proposal) error {
	return r.c.add(ctx, proposal, nil)
}

// UpdateStatus moves a proposal from one status to another. It returns
// models.ErrInvalidTransition when the stored status is not from.
func (r *ProposalRepository) UpdateStatus(ctx context.Context, id string, from, to models.ProposalStatus) (*models.Proposal, error) {
	return r.c.modify(ctx, id, func(p *models.Proposal) error {
		if p.Status != from {
			return models.ErrInvalidTransition
		}
		p.Status = to
		return nil
	})
}
