package types

import (
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/samber/lo"
)

// RuleUnit decides how the base points of a rule are derived
type RuleUnit string

const (
	// RuleUnitAmount scales points with the transaction amount
	RuleUnitAmount RuleUnit = "amount"
	// RuleUnitAction awards a flat number of points per action
	RuleUnitAction RuleUnit = "action"
)

func (u RuleUnit) Validate() error {
	allowed := []RuleUnit{RuleUnitAmount, RuleUnitAction}
	if !lo.Contains(allowed, u) {
		return ierr.NewError("invalid rule unit").
			WithHintf("Rule unit must be one of %v", allowed).
			WithReportableDetails(map[string]any{
				"unit": u,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Earning categories used by the default rule set
const (
	RuleCategoryBanking = "banking"
	RuleCategoryMobile  = "mobile"
	RuleCategoryPartner = "partner"
)
