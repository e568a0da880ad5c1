package rule

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/types"
)

type Repository interface {
	Create(ctx context.Context, rule *Rule) error
	Get(ctx context.Context, id string) (*Rule, error)
	// List returns rules ordered by creation time, oldest first
	List(ctx context.Context, filter *types.RuleFilter) ([]*Rule, error)
	Update(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, id string) error
}
