package rule

import (
	"time"

	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/shopspring/decimal"
)

// Rule maps a (category, service type) action to a points formula.
//
// Multiplier and Conditions are stored and returned to clients but are not
// part of the earn calculation.
type Rule struct {
	ID            string           `db:"id" json:"id"`
	Name          string           `db:"name" json:"name"`
	Category      string           `db:"category" json:"category"`
	ServiceType   string           `db:"service_type" json:"service_type"`
	PointsPerUnit int64            `db:"points_per_unit" json:"points_per_unit"`
	Unit          types.RuleUnit   `db:"unit" json:"unit"`
	UnitValue     decimal.Decimal  `db:"unit_value" json:"unit_value"`
	MinimumAmount *decimal.Decimal `db:"minimum_amount" json:"minimum_amount,omitempty"`
	MaximumPoints *int64           `db:"maximum_points" json:"maximum_points,omitempty"`
	Multiplier    decimal.Decimal  `db:"multiplier" json:"multiplier"`
	Conditions    types.JSONMap    `db:"conditions" json:"conditions"`
	IsActive      bool             `db:"is_active" json:"is_active"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updated_at"`
}

// Matches reports whether the rule applies to the given action
func (r *Rule) Matches(category, serviceType string) bool {
	return r.IsActive && r.Category == category && r.ServiceType == serviceType
}

func (r *Rule) Validate() error {
	if r.Name == "" || r.Category == "" || r.ServiceType == "" {
		return ierr.NewError("rule name, category and service type are required").
			WithHint("Rule name, category and service type are required").
			Mark(ierr.ErrValidation)
	}
	if err := r.Unit.Validate(); err != nil {
		return err
	}
	if r.PointsPerUnit < 0 {
		return ierr.NewError("points_per_unit must not be negative").
			WithHint("Points per unit must be zero or more").
			Mark(ierr.ErrValidation)
	}
	if r.Unit == types.RuleUnitAmount && !r.UnitValue.IsPositive() {
		return ierr.NewError("unit_value must be positive for amount rules").
			WithHint("Unit value must be greater than zero when the rule unit is amount").
			WithReportableDetails(map[string]any{
				"unit_value": r.UnitValue.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if r.MaximumPoints != nil && *r.MaximumPoints < 0 {
		return ierr.NewError("maximum_points must not be negative").
			WithHint("Maximum points must be zero or more").
			Mark(ierr.ErrValidation)
	}
	return nil
}
