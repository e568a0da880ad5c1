package dto

import (
	"github.com/cbo-rewards/loyalty/internal/domain/points"
	"github.com/cbo-rewards/loyalty/internal/domain/tier"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/cbo-rewards/loyalty/internal/validator"
	"github.com/shopspring/decimal"
)

// EarnPointsRequest credits a customer for one banking action. Amount is
// required only when the matched rule is amount based.
type EarnPointsRequest struct {
	CustomerID     string           `json:"customer_id" validate:"required"`
	Category       string           `json:"category" validate:"required"`
	ServiceType    string           `json:"service_type" validate:"required"`
	Amount         *decimal.Decimal `json:"amount,omitempty" swaggertype:"string"`
	Currency       string           `json:"currency,omitempty" validate:"omitempty,len=3"`
	Metadata       types.Metadata   `json:"metadata,omitempty"`
	IdempotencyKey *string          `json:"idempotency_key,omitempty" validate:"omitempty,max=128"`
}

func (r *EarnPointsRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Amount != nil && r.Amount.IsNegative() {
		return ierr.NewError("amount must not be negative").
			WithHint("Amount must be greater than zero").
			WithReportableDetails(map[string]any{
				"amount": r.Amount.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

type EarnPointsResponse struct {
	Transaction  *TransactionResponse `json:"transaction"`
	PointsEarned int64                `json:"points_earned"`
	Balance      *PointsResponse      `json:"balance"`
	// Duplicate is true when the idempotency key matched an earlier earn
	// and nothing was credited
	Duplicate bool `json:"duplicate,omitempty"`
}

type RedeemPointsRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	RewardID   string `json:"reward_id" validate:"required"`
}

func (r *RedeemPointsRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type RedeemPointsResponse struct {
	Redemption  *RedemptionResponse  `json:"redemption"`
	Transaction *TransactionResponse `json:"transaction"`
	Balance     *PointsResponse      `json:"balance,omitempty"`
}

type PointsResponse struct {
	*points.Points
}

func NewPointsResponse(p *points.Points) *PointsResponse {
	if p == nil {
		return nil
	}
	return &PointsResponse{Points: p}
}

type TransactionResponse struct {
	*points.Transaction
}

func NewTransactionResponse(t *points.Transaction) *TransactionResponse {
	if t == nil {
		return nil
	}
	return &TransactionResponse{Transaction: t}
}

// ListTransactionsResponse is newest first
type ListTransactionsResponse = types.ListResponse[*TransactionResponse]

// BalanceResponse is the customer facing view of a balance. Tier is null
// when the customer has no tier assignment.
type BalanceResponse struct {
	Points           *PointsResponse `json:"points"`
	Tier             *TierResponse   `json:"tier"`
	NextTier         *TierResponse   `json:"next_tier,omitempty"`
	PointsToNextTier *int64          `json:"points_to_next_tier,omitempty"`
}

// NewBalanceResponse derives tier progress from the ordered tier list
func NewBalanceResponse(p *points.Points, current *tier.Tier, tiers []*tier.Tier) *BalanceResponse {
	resp := &BalanceResponse{
		Points: NewPointsResponse(p),
		Tier:   NewTierResponse(current),
	}

	for _, t := range tiers {
		if t.MinimumPoints <= p.TotalPoints {
			continue
		}
		if current != nil && t.MinimumPoints <= current.MinimumPoints {
			continue
		}
		remaining := t.MinimumPoints - p.TotalPoints
		resp.NextTier = NewTierResponse(t)
		resp.PointsToNextTier = &remaining
		break
	}
	return resp
}
