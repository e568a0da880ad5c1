package reward

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/types"
)

type Repository interface {
	Create(ctx context.Context, reward *Reward) error
	Get(ctx context.Context, id string) (*Reward, error)
	// GetForUpdate locks the reward row until the surrounding transaction
	// ends, where the backend supports row locks
	GetForUpdate(ctx context.Context, id string) (*Reward, error)
	List(ctx context.Context, filter *types.RewardFilter) ([]*Reward, error)
	Update(ctx context.Context, reward *Reward) error
	// DecrementStock takes one unit off a finite, non exhausted stock.
	// Unlimited stock is left untouched.
	DecrementStock(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
