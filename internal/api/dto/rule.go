package dto

import (
	"time"

	"github.com/cbo-rewards/loyalty/internal/domain/rule"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/cbo-rewards/loyalty/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type CreateRuleRequest struct {
	Name          string           `json:"name" validate:"required,max=255"`
	Category      string           `json:"category" validate:"required"`
	ServiceType   string           `json:"service_type" validate:"required"`
	PointsPerUnit int64            `json:"points_per_unit" validate:"gte=0"`
	Unit          types.RuleUnit   `json:"unit" validate:"required,oneof=amount action"`
	UnitValue     decimal.Decimal  `json:"unit_value" swaggertype:"string"`
	MinimumAmount *decimal.Decimal `json:"minimum_amount,omitempty" swaggertype:"string"`
	MaximumPoints *int64           `json:"maximum_points,omitempty" validate:"omitempty,gte=0"`
	Multiplier    *decimal.Decimal `json:"multiplier,omitempty" swaggertype:"string"`
	Conditions    types.JSONMap    `json:"conditions,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

func (r *CreateRuleRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.ToRule().Validate()
}

func (r *CreateRuleRequest) ToRule() *rule.Rule {
	now := time.Now().UTC()
	unitValue := r.UnitValue
	if r.Unit == types.RuleUnitAction && unitValue.IsZero() {
		unitValue = decimal.NewFromInt(1)
	}
	return &rule.Rule{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RULE),
		Name:          r.Name,
		Category:      r.Category,
		ServiceType:   r.ServiceType,
		PointsPerUnit: r.PointsPerUnit,
		Unit:          r.Unit,
		UnitValue:     unitValue,
		MinimumAmount: r.MinimumAmount,
		MaximumPoints: r.MaximumPoints,
		Multiplier:    lo.FromPtrOr(r.Multiplier, decimal.NewFromInt(1)),
		Conditions:    lo.Ternary(r.Conditions != nil, r.Conditions, types.JSONMap{}),
		IsActive:      lo.FromPtrOr(r.IsActive, true),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// UpdateRuleRequest is a partial update; nil fields are left untouched
type UpdateRuleRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,max=255"`
	Category      *string          `json:"category,omitempty"`
	ServiceType   *string          `json:"service_type,omitempty"`
	PointsPerUnit *int64           `json:"points_per_unit,omitempty" validate:"omitempty,gte=0"`
	Unit          *types.RuleUnit  `json:"unit,omitempty" validate:"omitempty,oneof=amount action"`
	UnitValue     *decimal.Decimal `json:"unit_value,omitempty" swaggertype:"string"`
	MinimumAmount *decimal.Decimal `json:"minimum_amount,omitempty" swaggertype:"string"`
	MaximumPoints *int64           `json:"maximum_points,omitempty" validate:"omitempty,gte=0"`
	Multiplier    *decimal.Decimal `json:"multiplier,omitempty" swaggertype:"string"`
	Conditions    types.JSONMap    `json:"conditions,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

func (r *UpdateRuleRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the set fields onto an existing rule
func (r *UpdateRuleRequest) Apply(existing *rule.Rule) {
	if r.Name != nil {
		existing.Name = *r.Name
	}
	if r.Category != nil {
		existing.Category = *r.Category
	}
	if r.ServiceType != nil {
		existing.ServiceType = *r.ServiceType
	}
	if r.PointsPerUnit != nil {
		existing.PointsPerUnit = *r.PointsPerUnit
	}
	if r.Unit != nil {
		existing.Unit = *r.Unit
	}
	if r.UnitValue != nil {
		existing.UnitValue = *r.UnitValue
	}
	if r.MinimumAmount != nil {
		existing.MinimumAmount = r.MinimumAmount
	}
	if r.MaximumPoints != nil {
		existing.MaximumPoints = r.MaximumPoints
	}
	if r.Multiplier != nil {
		existing.Multiplier = *r.Multiplier
	}
	if r.Conditions != nil {
		existing.Conditions = r.Conditions
	}
	if r.IsActive != nil {
		existing.IsActive = *r.IsActive
	}
	existing.UpdatedAt = time.Now().UTC()
}

type RuleResponse struct {
	*rule.Rule
}

func NewRuleResponse(r *rule.Rule) *RuleResponse {
	return &RuleResponse{Rule: r}
}

type ListRulesResponse struct {
	Rules []*RuleResponse `json:"rules"`
}

func NewListRulesResponse(rules []*rule.Rule) *ListRulesResponse {
	return &ListRulesResponse{Rules: lo.Map(rules, func(r *rule.Rule, _ int) *RuleResponse {
		return NewRuleResponse(r)
	})}
}
