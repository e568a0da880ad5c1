package memory

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/domain/redemption"
	"github.com/cbo-rewards/loyalty/internal/types"
)

type RedemptionStore struct {
	*Store[redemption.Redemption]
}

func NewRedemptionStore() *RedemptionStore {
	return &RedemptionStore{Store: NewStore[redemption.Redemption]("redemption")}
}

func (s *RedemptionStore) Create(ctx context.Context, r *redemption.Redemption) error {
	return s.Store.Create(ctx, r.ID, r)
}

func (s *RedemptionStore) List(ctx context.Context, filter *types.RedemptionFilter) ([]*redemption.Redemption, error) {
	if filter == nil {
		filter = types.NewRedemptionFilter()
	}
	items := s.Store.List(ctx, func(_ context.Context, r *redemption.Redemption) bool {
		return filter.CustomerID == "" || r.CustomerID == filter.CustomerID
	}, func(a, b *redemption.Redemption) bool {
		if a.RedeemedAt.Equal(b.RedeemedAt) {
			return a.ID > b.ID
		}
		return a.RedeemedAt.After(b.RedeemedAt)
	})
	if filter.QueryFilter == nil {
		return items, nil
	}
	return paginate(items, filter.GetLimit(), filter.GetOffset(), filter.IsUnlimited()), nil
}
