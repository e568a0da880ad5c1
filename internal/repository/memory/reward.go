package memory

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/domain/reward"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
)

type RewardStore struct {
	*Store[reward.Reward]
}

func NewRewardStore() *RewardStore {
	return &RewardStore{Store: NewStore[reward.Reward]("reward")}
}

func (s *RewardStore) Create(ctx context.Context, r *reward.Reward) error {
	return s.Store.Create(ctx, r.ID, r)
}

func (s *RewardStore) GetForUpdate(ctx context.Context, id string) (*reward.Reward, error) {
	return s.Store.Get(ctx, id)
}

func (s *RewardStore) List(ctx context.Context, filter *types.RewardFilter) ([]*reward.Reward, error) {
	if filter == nil {
		filter = &types.RewardFilter{}
	}
	return s.Store.List(ctx, func(_ context.Context, r *reward.Reward) bool {
		return !filter.ActiveOnly || r.IsActive
	}, func(a, b *reward.Reward) bool {
		if a.Cost == b.Cost {
			return a.Name < b.Name
		}
		return a.Cost < b.Cost
	}), nil
}

func (s *RewardStore) Update(ctx context.Context, r *reward.Reward) error {
	return s.Store.Update(ctx, r.ID, r)
}

func (s *RewardStore) DecrementStock(ctx context.Context, id string) error {
	return s.Mutate(ctx, id, func(r *reward.Reward) error {
		if r.IsUnlimited() {
			return nil
		}
		if r.Stock <= 0 {
			return ierr.NewError("reward out of stock").
				WithHint("This reward is out of stock").
				WithReportableDetails(map[string]any{
					"reward_id": id,
				}).
				Mark(ierr.ErrOutOfStock)
		}
		r.Stock--
		return nil
	})
}
