package memory

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/domain/campaign"
	"github.com/cbo-rewards/loyalty/internal/types"
)

type CampaignStore struct {
	*Store[campaign.Campaign]
}

func NewCampaignStore() *CampaignStore {
	return &CampaignStore{Store: NewStore[campaign.Campaign]("campaign")}
}

func (s *CampaignStore) Create(ctx context.Context, c *campaign.Campaign) error {
	return s.Store.Create(ctx, c.ID, c)
}

func (s *CampaignStore) List(ctx context.Context, filter *types.CampaignFilter) ([]*campaign.Campaign, error) {
	if filter == nil {
		filter = &types.CampaignFilter{}
	}
	return s.Store.List(ctx, func(_ context.Context, c *campaign.Campaign) bool {
		return filter.Status == nil || c.Status == *filter.Status
	}, func(a, b *campaign.Campaign) bool {
		return a.StartDate.Before(b.StartDate)
	}), nil
}

func (s *CampaignStore) Update(ctx context.Context, c *campaign.Campaign) error {
	return s.Store.Update(ctx, c.ID, c)
}
