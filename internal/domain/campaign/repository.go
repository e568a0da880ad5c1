package campaign

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/types"
)

type Repository interface {
	Create(ctx context.Context, campaign *Campaign) error
	Get(ctx context.Context, id string) (*Campaign, error)
	List(ctx context.Context, filter *types.CampaignFilter) ([]*Campaign, error)
	Update(ctx context.Context, campaign *Campaign) error
	Delete(ctx context.Context, id string) error
}
