package dto

import (
	"time"

	"github.com/cbo-rewards/loyalty/internal/domain/tier"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/cbo-rewards/loyalty/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type CreateTierRequest struct {
	Name          string          `json:"name" validate:"required,max=100"`
	MinimumPoints int64           `json:"minimum_points" validate:"gte=0"`
	Multiplier    decimal.Decimal `json:"multiplier" swaggertype:"string"`
	Benefits      []string        `json:"benefits,omitempty"`
	Color         string          `json:"color,omitempty" validate:"omitempty,max=32"`
	IsActive      *bool           `json:"is_active,omitempty"`
}

func (r *CreateTierRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.ToTier().Validate()
}

func (r *CreateTierRequest) ToTier() *tier.Tier {
	return &tier.Tier{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TIER),
		Name:          r.Name,
		MinimumPoints: r.MinimumPoints,
		Multiplier:    r.Multiplier,
		Benefits:      lo.Ternary(r.Benefits != nil, types.StringList(r.Benefits), types.StringList{}),
		Color:         r.Color,
		IsActive:      lo.FromPtrOr(r.IsActive, true),
		CreatedAt:     time.Now().UTC(),
	}
}

type UpdateTierRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,max=100"`
	MinimumPoints *int64           `json:"minimum_points,omitempty" validate:"omitempty,gte=0"`
	Multiplier    *decimal.Decimal `json:"multiplier,omitempty" swaggertype:"string"`
	Benefits      []string         `json:"benefits,omitempty"`
	Color         *string          `json:"color,omitempty" validate:"omitempty,max=32"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

func (r *UpdateTierRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *UpdateTierRequest) Apply(existing *tier.Tier) {
	if r.Name != nil {
		existing.Name = *r.Name
	}
	if r.MinimumPoints != nil {
		existing.MinimumPoints = *r.MinimumPoints
	}
	if r.Multiplier != nil {
		existing.Multiplier = *r.Multiplier
	}
	if r.Benefits != nil {
		existing.Benefits = r.Benefits
	}
	if r.Color != nil {
		existing.Color = *r.Color
	}
	if r.IsActive != nil {
		existing.IsActive = *r.IsActive
	}
}

type TierResponse struct {
	*tier.Tier
}

func NewTierResponse(t *tier.Tier) *TierResponse {
	if t == nil {
		return nil
	}
	return &TierResponse{Tier: t}
}

type ListTiersResponse struct {
	Tiers []*TierResponse `json:"tiers"`
}

func NewListTiersResponse(tiers []*tier.Tier) *ListTiersResponse {
	return &ListTiersResponse{Tiers: lo.Map(tiers, func(t *tier.Tier, _ int) *TierResponse {
		return NewTierResponse(t)
	})}
}

type TierAssignmentResponse struct {
	*tier.Assignment
	Tier *TierResponse `json:"tier"`
}
