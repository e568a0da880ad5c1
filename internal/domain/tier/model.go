package tier

import (
	"time"

	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/shopspring/decimal"
)

// Tier is a reward band ordered by MinimumPoints
type Tier struct {
	ID            string           `db:"id" json:"id"`
	Name          string           `db:"name" json:"name"`
	MinimumPoints int64            `db:"minimum_points" json:"minimum_points"`
	Multiplier    decimal.Decimal  `db:"multiplier" json:"multiplier"`
	Benefits      types.StringList `db:"benefits" json:"benefits"`
	Color         string           `db:"color" json:"color"`
	IsActive      bool             `db:"is_active" json:"is_active"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
}

func (t *Tier) Validate() error {
	if t.Name == "" {
		return ierr.NewError("tier name is required").
			WithHint("Tier name is required").
			Mark(ierr.ErrValidation)
	}
	if t.MinimumPoints < 0 {
		return ierr.NewError("minimum_points must not be negative").
			WithHint("Minimum points must be zero or more").
			Mark(ierr.ErrValidation)
	}
	if t.Multiplier.IsNegative() {
		return ierr.NewError("multiplier must not be negative").
			WithHint("Tier multiplier must be zero or more").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Assignment is the authoritative customer to tier link. There is at most
// one per customer; it is not derived from the points balance.
type Assignment struct {
	ID         string    `db:"id" json:"id"`
	CustomerID string    `db:"customer_id" json:"customer_id"`
	TierID     string    `db:"tier_id" json:"tier_id"`
	AchievedAt time.Time `db:"achieved_at" json:"achieved_at"`
}
