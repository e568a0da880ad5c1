package reward

import (
	"time"

	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/shopspring/decimal"
)

// Reward is a redeemable catalog entry. Stock of -1 means unlimited.
type Reward struct {
	ID          string           `db:"id" json:"id"`
	Name        string           `db:"name" json:"name"`
	Description string           `db:"description" json:"description"`
	Type        types.RewardType `db:"type" json:"type"`
	Category    string           `db:"category" json:"category"`
	Provider    *string          `db:"provider" json:"provider,omitempty"`
	Terms       *string          `db:"terms" json:"terms,omitempty"`
	Cost        int64            `db:"cost" json:"cost"`
	Value       decimal.Decimal  `db:"value" json:"value"`
	Stock       int64            `db:"stock" json:"stock"`
	IsActive    bool             `db:"is_active" json:"is_active"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}

func (r *Reward) IsUnlimited() bool {
	return r.Stock == types.UnlimitedStock
}

// InStock reports whether one more unit can be handed out
func (r *Reward) InStock() bool {
	return r.IsUnlimited() || r.Stock > 0
}

func (r *Reward) IsVoucher() bool {
	return r.Type == types.RewardTypeVoucher
}

func (r *Reward) Validate() error {
	if r.Name == "" || r.Category == "" || r.Type == "" {
		return ierr.NewError("reward name, type and category are required").
			WithHint("Reward name, type and category are required").
			Mark(ierr.ErrValidation)
	}
	if r.Cost <= 0 {
		return ierr.NewError("reward cost must be positive").
			WithHint("Reward cost must be greater than zero").
			Mark(ierr.ErrValidation)
	}
	if r.Value.IsNegative() {
		return ierr.NewError("reward value must not be negative").
			WithHint("Reward value must be zero or more").
			Mark(ierr.ErrValidation)
	}
	if r.Stock < types.UnlimitedStock {
		return ierr.NewError("invalid reward stock").
			WithHint("Stock must be -1 for unlimited or zero or more").
			WithReportableDetails(map[string]any{
				"stock": r.Stock,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
