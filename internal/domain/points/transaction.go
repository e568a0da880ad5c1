package points

import (
	"time"

	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/shopspring/decimal"
)

// Transaction is an append-only record of one earn or redeem. Points is
// always a non-negative magnitude; Type carries the direction.
type Transaction struct {
	ID             string                  `db:"id" json:"id"`
	CustomerID     string                  `db:"customer_id" json:"customer_id"`
	Type           types.TransactionType   `db:"type" json:"type"`
	Points         int64                   `db:"points" json:"points"`
	Description    string                  `db:"description" json:"description"`
	Category       string                  `db:"category" json:"category"`
	Amount         *decimal.Decimal        `db:"amount" json:"amount,omitempty"`
	Currency       string                  `db:"currency" json:"currency,omitempty"`
	RuleID         *string                 `db:"rule_id" json:"rule_id,omitempty"`
	CampaignID     *string                 `db:"campaign_id" json:"campaign_id,omitempty"`
	Status         types.TransactionStatus `db:"status" json:"status"`
	IdempotencyKey *string                 `db:"idempotency_key" json:"idempotency_key,omitempty"`
	Metadata       types.Metadata          `db:"metadata" json:"metadata"`
	CreatedAt      time.Time               `db:"created_at" json:"created_at"`
}

func (t *Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) Validate() error {
	if t.CustomerID == "" {
		return ierr.NewError("customer_id is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if t.Points < 0 {
		return ierr.NewError("points must not be negative").
			WithHint("Transaction points must be zero or more").
			WithReportableDetails(map[string]any{
				"points": t.Points,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
