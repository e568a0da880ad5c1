package memory

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/domain/rule"
	"github.com/cbo-rewards/loyalty/internal/types"
)

type RuleStore struct {
	*Store[rule.Rule]
}

func NewRuleStore() *RuleStore {
	return &RuleStore{Store: NewStore[rule.Rule]("rule")}
}

func (s *RuleStore) Create(ctx context.Context, r *rule.Rule) error {
	return s.Store.Create(ctx, r.ID, r)
}

func (s *RuleStore) List(ctx context.Context, filter *types.RuleFilter) ([]*rule.Rule, error) {
	if filter == nil {
		filter = &types.RuleFilter{}
	}
	return s.Store.List(ctx, func(_ context.Context, r *rule.Rule) bool {
		if filter.ActiveOnly && !r.IsActive {
			return false
		}
		if filter.Category != "" && r.Category != filter.Category {
			return false
		}
		if filter.ServiceType != "" && r.ServiceType != filter.ServiceType {
			return false
		}
		return true
	}, func(a, b *rule.Rule) bool {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.Before(b.CreatedAt)
	}), nil
}

func (s *RuleStore) Update(ctx context.Context, r *rule.Rule) error {
	return s.Store.Update(ctx, r.ID, r)
}
