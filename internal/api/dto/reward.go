package dto

import (
	"time"

	"github.com/cbo-rewards/loyalty/internal/domain/redemption"
	"github.com/cbo-rewards/loyalty/internal/domain/reward"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/cbo-rewards/loyalty/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type CreateRewardRequest struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Description string           `json:"description,omitempty"`
	Type        types.RewardType `json:"type" validate:"required,oneof=cashback voucher discount service"`
	Category    string           `json:"category" validate:"required"`
	Provider    *string          `json:"provider,omitempty"`
	Terms       *string          `json:"terms,omitempty"`
	Cost        int64            `json:"cost" validate:"required,gt=0"`
	Value       decimal.Decimal  `json:"value" swaggertype:"string"`
	// Stock of -1 means unlimited. Omitted stock is unlimited.
	Stock    *int64 `json:"stock,omitempty" validate:"omitempty,gte=-1"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func (r *CreateRewardRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.ToReward().Validate()
}

func (r *CreateRewardRequest) ToReward() *reward.Reward {
	return &reward.Reward{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REWARD),
		Name:        r.Name,
		Description: r.Description,
		Type:        r.Type,
		Category:    r.Category,
		Provider:    r.Provider,
		Terms:       r.Terms,
		Cost:        r.Cost,
		Value:       r.Value,
		Stock:       lo.FromPtrOr(r.Stock, types.UnlimitedStock),
		IsActive:    lo.FromPtrOr(r.IsActive, true),
		CreatedAt:   time.Now().UTC(),
	}
}

type UpdateRewardRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Terms       *string          `json:"terms,omitempty"`
	Cost        *int64           `json:"cost,omitempty" validate:"omitempty,gt=0"`
	Value       *decimal.Decimal `json:"value,omitempty" swaggertype:"string"`
	Stock       *int64           `json:"stock,omitempty" validate:"omitempty,gte=-1"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

func (r *UpdateRewardRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *UpdateRewardRequest) Apply(existing *reward.Reward) {
	if r.Name != nil {
		existing.Name = *r.Name
	}
	if r.Description != nil {
		existing.Description = *r.Description
	}
	if r.Category != nil {
		existing.Category = *r.Category
	}
	if r.Terms != nil {
		existing.Terms = r.Terms
	}
	if r.Cost != nil {
		existing.Cost = *r.Cost
	}
	if r.Value != nil {
		existing.Value = *r.Value
	}
	if r.Stock != nil {
		existing.Stock = *r.Stock
	}
	if r.IsActive != nil {
		existing.IsActive = *r.IsActive
	}
}

type RewardResponse struct {
	*reward.Reward
	Unlimited bool `json:"unlimited"`
}

func NewRewardResponse(r *reward.Reward) *RewardResponse {
	return &RewardResponse{Reward: r, Unlimited: r.IsUnlimited()}
}

type ListRewardsResponse struct {
	Rewards []*RewardResponse `json:"rewards"`
}

func NewListRewardsResponse(rewards []*reward.Reward) *ListRewardsResponse {
	return &ListRewardsResponse{Rewards: lo.Map(rewards, func(r *reward.Reward, _ int) *RewardResponse {
		return NewRewardResponse(r)
	})}
}

type RedemptionResponse struct {
	*redemption.Redemption
	Reward *RewardResponse `json:"reward,omitempty"`
}

func NewRedemptionResponse(r *redemption.Redemption, rw *reward.Reward) *RedemptionResponse {
	if r == nil {
		return nil
	}
	resp := &RedemptionResponse{Redemption: r}
	if rw != nil {
		resp.Reward = NewRewardResponse(rw)
	}
	return resp
}

type ListRedemptionsResponse = types.ListResponse[*RedemptionResponse]
