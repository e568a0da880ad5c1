package dto

import (
	"time"

	"github.com/cbo-rewards/loyalty/internal/domain/campaign"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/cbo-rewards/loyalty/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type CreateCampaignRequest struct {
	Name            string           `json:"name" validate:"required,max=255"`
	Description     string           `json:"description,omitempty"`
	Type            string           `json:"type" validate:"required"`
	StartDate       time.Time        `json:"start_date" validate:"required"`
	EndDate         time.Time        `json:"end_date" validate:"required"`
	Rules           types.JSONMap    `json:"rules,omitempty"`
	TargetCustomers []string         `json:"target_customers,omitempty"`
	Budget          *decimal.Decimal `json:"budget,omitempty" swaggertype:"string"`
}

func (r *CreateCampaignRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.ToCampaign("").Validate()
}

// ToCampaign derives the initial status from the window so a campaign
// created mid-window is immediately active
func (r *CreateCampaignRequest) ToCampaign(createdBy string) *campaign.Campaign {
	now := time.Now().UTC()
	return &campaign.Campaign{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CAMPAIGN),
		Name:            r.Name,
		Description:     r.Description,
		Type:            r.Type,
		StartDate:       r.StartDate.UTC(),
		EndDate:         r.EndDate.UTC(),
		Rules:           lo.Ternary(r.Rules != nil, r.Rules, types.JSONMap{}),
		TargetCustomers: lo.Ternary(r.TargetCustomers != nil, types.StringList(r.TargetCustomers), types.StringList{}),
		Budget:          r.Budget,
		Spent:           decimal.Zero,
		Status:          types.CampaignStatusAt(r.StartDate, r.EndDate, now),
		CreatedBy:       createdBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

type UpdateCampaignRequest struct {
	Name        *string               `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string               `json:"description,omitempty"`
	StartDate   *time.Time            `json:"start_date,omitempty"`
	EndDate     *time.Time            `json:"end_date,omitempty"`
	Rules       types.JSONMap         `json:"rules,omitempty"`
	Budget      *decimal.Decimal      `json:"budget,omitempty" swaggertype:"string"`
	Status      *types.CampaignStatus `json:"status,omitempty" validate:"omitempty,oneof=scheduled active ended"`
}

func (r *UpdateCampaignRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *UpdateCampaignRequest) Apply(existing *campaign.Campaign) {
	if r.Name != nil {
		existing.Name = *r.Name
	}
	if r.Description != nil {
		existing.Description = *r.Description
	}
	if r.StartDate != nil {
		existing.StartDate = r.StartDate.UTC()
	}
	if r.EndDate != nil {
		existing.EndDate = r.EndDate.UTC()
	}
	if r.Rules != nil {
		existing.Rules = r.Rules
	}
	if r.Budget != nil {
		existing.Budget = r.Budget
	}
	if r.Status != nil {
		existing.Status = *r.Status
	}
	existing.UpdatedAt = time.Now().UTC()
}

type CampaignResponse struct {
	*campaign.Campaign
}

type ListCampaignsResponse struct {
	Campaigns []*CampaignResponse `json:"campaigns"`
}

func NewListCampaignsResponse(campaigns []*campaign.Campaign) *ListCampaignsResponse {
	return &ListCampaignsResponse{Campaigns: lo.Map(campaigns, func(c *campaign.Campaign, _ int) *CampaignResponse {
		return &CampaignResponse{Campaign: c}
	})}
}
