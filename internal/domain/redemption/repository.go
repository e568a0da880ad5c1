package redemption

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/types"
)

type Repository interface {
	Create(ctx context.Context, r *Redemption) error
	Get(ctx context.Context, id string) (*Redemption, error)
	List(ctx context.Context, filter *types.RedemptionFilter) ([]*Redemption, error)
}
