package memory

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/domain/tier"
)

type TierStore struct {
	tiers       *Store[tier.Tier]
	assignments *Store[tier.Assignment]
}

func NewTierStore() *TierStore {
	return &TierStore{
		tiers:       NewStore[tier.Tier]("tier"),
		assignments: NewStore[tier.Assignment]("tier assignment"),
	}
}

func (s *TierStore) Create(ctx context.Context, t *tier.Tier) error {
	return s.tiers.Create(ctx, t.ID, t)
}

func (s *TierStore) Get(ctx context.Context, id string) (*tier.Tier, error) {
	return s.tiers.Get(ctx, id)
}

func (s *TierStore) List(ctx context.Context) ([]*tier.Tier, error) {
	return s.tiers.List(ctx, nil, func(a, b *tier.Tier) bool {
		if a.MinimumPoints == b.MinimumPoints {
			return a.ID < b.ID
		}
		return a.MinimumPoints < b.MinimumPoints
	}), nil
}

func (s *TierStore) Update(ctx context.Context, t *tier.Tier) error {
	return s.tiers.Update(ctx, t.ID, t)
}

func (s *TierStore) Delete(ctx context.Context, id string) error {
	return s.tiers.Delete(ctx, id)
}

// Assignments are keyed by customer so there is at most one per customer
func (s *TierStore) GetAssignment(ctx context.Context, customerID string) (*tier.Assignment, error) {
	return s.assignments.Get(ctx, customerID)
}

func (s *TierStore) UpsertAssignment(ctx context.Context, a *tier.Assignment) error {
	s.assignments.Put(ctx, a.CustomerID, a)
	return nil
}

func (s *TierStore) CountAssignmentsByTier(ctx context.Context, tierID string) (int, error) {
	return s.assignments.Count(ctx, func(_ context.Context, a *tier.Assignment) bool {
		return a.TierID == tierID
	}), nil
}

func (s *TierStore) Clear() {
	s.tiers.Clear()
	s.assignments.Clear()
}
