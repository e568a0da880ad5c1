package dto

import (
	"strings"
	"time"

	"github.com/cbo-rewards/loyalty/internal/domain/branch"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/cbo-rewards/loyalty/internal/validator"
	"github.com/samber/lo"
)

type CreateBranchRequest struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Code    string  `json:"code" validate:"required,max=32"`
	City    string  `json:"city,omitempty" validate:"omitempty,max=100"`
	Region  string  `json:"region,omitempty" validate:"omitempty,max=100"`
	Manager *string `json:"manager,omitempty"`
}

func (r *CreateBranchRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToBranch leaves Slug empty; the service derives a unique one
func (r *CreateBranchRequest) ToBranch() *branch.Branch {
	return &branch.Branch{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BRANCH),
		Name:      r.Name,
		Code:      strings.ToUpper(strings.TrimSpace(r.Code)),
		City:      r.City,
		Region:    r.Region,
		Manager:   r.Manager,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

type UpdateBranchRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
	City     *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Region   *string `json:"region,omitempty" validate:"omitempty,max=100"`
	Manager  *string `json:"manager,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateBranchRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *UpdateBranchRequest) Apply(existing *branch.Branch) {
	if r.Name != nil {
		existing.Name = *r.Name
	}
	if r.City != nil {
		existing.City = *r.City
	}
	if r.Region != nil {
		existing.Region = *r.Region
	}
	if r.Manager != nil {
		existing.Manager = r.Manager
	}
	if r.IsActive != nil {
		existing.IsActive = *r.IsActive
	}
}

type BranchResponse struct {
	*branch.Branch
}

type ListBranchesResponse struct {
	Branches []*BranchResponse `json:"branches"`
}

func NewListBranchesResponse(branches []*branch.Branch) *ListBranchesResponse {
	return &ListBranchesResponse{Branches: lo.Map(branches, func(b *branch.Branch, _ int) *BranchResponse {
		return &BranchResponse{Branch: b}
	})}
}
