package redemption

import (
	"time"

	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/shopspring/decimal"
)

// Redemption is the immutable record of a completed reward claim. Code and
// ExpiresAt are only set for voucher rewards.
type Redemption struct {
	ID         string                 `db:"id" json:"id"`
	CustomerID string                 `db:"customer_id" json:"customer_id"`
	RewardID   string                 `db:"reward_id" json:"reward_id"`
	PointsUsed int64                  `db:"points_used" json:"points_used"`
	Value      decimal.Decimal        `db:"value" json:"value"`
	Status     types.RedemptionStatus `db:"status" json:"status"`
	Code       *string                `db:"code" json:"code,omitempty"`
	ExpiresAt  *time.Time             `db:"expires_at" json:"expires_at,omitempty"`
	RedeemedAt time.Time              `db:"redeemed_at" json:"redeemed_at"`
	CreatedAt  time.Time              `db:"created_at" json:"created_at"`
}

func (r *Redemption) HasVoucher() bool {
	return r.Code != nil && *r.Code != ""
}
