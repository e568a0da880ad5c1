package service

import (
	"github.com/cbo-rewards/loyalty/internal/domain/rule"
	"github.com/cbo-rewards/loyalty/internal/domain/tier"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/shopspring/decimal"
)

// ComputeEarnedPoints turns a matched rule into a whole number of points.
//
// Amount rules yield floor(amount * pointsPerUnit / unitValue); action rules
// yield pointsPerUnit and ignore amount. A tier, when present, scales the
// base with its multiplier and the result is floored again before the
// rule's maximum is applied. Rule multiplier, conditions and minimum amount
// do not take part.
func ComputeEarnedPoints(r *rule.Rule, t *tier.Tier, amount *decimal.Decimal) (int64, error) {
	if r == nil {
		return 0, ierr.NewError("rule is required").
			WithHint("A rule is required to compute points").
			Mark(ierr.ErrValidation)
	}

	var base decimal.Decimal
	switch r.Unit {
	case types.RuleUnitAmount:
		if amount == nil || !amount.IsPositive() {
			return 0, ierr.NewError("amount is required for amount based rules").
				WithHint("Transaction amount must be greater than zero").
				WithReportableDetails(map[string]any{
					"rule_id": r.ID,
				}).
				Mark(ierr.ErrValidation)
		}
		if !r.UnitValue.IsPositive() {
			return 0, ierr.NewError("rule unit value must be positive").
				WithHint("The matched rule is misconfigured").
				WithReportableDetails(map[string]any{
					"rule_id": r.ID,
				}).
				Mark(ierr.ErrValidation)
		}
		// multiply before dividing so exact multiples never lose a point
		base = amount.Mul(decimal.NewFromInt(r.PointsPerUnit)).Div(r.UnitValue).Floor()
	case types.RuleUnitAction:
		base = decimal.NewFromInt(r.PointsPerUnit)
	default:
		return 0, r.Unit.Validate()
	}

	earned := base
	if t != nil {
		earned = base.Mul(t.Multiplier).Floor()
	}

	pts := earned.IntPart()
	if r.MaximumPoints != nil && pts > *r.MaximumPoints {
		pts = *r.MaximumPoints
	}
	if pts < 0 {
		pts = 0
	}
	return pts, nil
}
