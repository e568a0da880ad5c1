package dto

import (
	"strings"
	"time"

	"github.com/cbo-rewards/loyalty/internal/domain/points"
	"github.com/cbo-rewards/loyalty/internal/domain/user"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/cbo-rewards/loyalty/internal/validator"
	"github.com/samber/lo"
)

// RegisterCustomerRequest enrols a bank customer in the programme. The
// identity itself is managed by the bank; only profile data is kept here.
type RegisterCustomerRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=64"`
	Email       string  `json:"email" validate:"required,email"`
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	BankingID   *string `json:"banking_id,omitempty" validate:"omitempty,max=64"`
	BranchID    *string `json:"branch_id,omitempty"`
}

func (r *RegisterCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *RegisterCustomerRequest) ToUser() *user.User {
	now := time.Now().UTC()
	return &user.User{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Username:    strings.TrimSpace(r.Username),
		Email:       strings.ToLower(strings.TrimSpace(r.Email)),
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		BankingID:   r.BankingID,
		Role:        types.UserRoleCustomer,
		BranchID:    r.BranchID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CreateStaffRequest adds an admin or branch manager
type CreateStaffRequest struct {
	Username  string         `json:"username" validate:"required,min=3,max=64"`
	Email     string         `json:"email" validate:"required,email"`
	FirstName string         `json:"first_name" validate:"required,max=100"`
	LastName  string         `json:"last_name" validate:"required,max=100"`
	Role      types.UserRole `json:"role" validate:"required,oneof=admin branch_manager"`
	BranchID  *string        `json:"branch_id,omitempty" validate:"required_if=Role branch_manager"`
}

func (r *CreateStaffRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateStaffRequest) ToUser() *user.User {
	now := time.Now().UTC()
	return &user.User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Username:  strings.TrimSpace(r.Username),
		Email:     strings.ToLower(strings.TrimSpace(r.Email)),
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      r.Role,
		BranchID:  r.BranchID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type UserResponse struct {
	*user.User
	FullName string `json:"full_name"`
}

func NewUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{User: u, FullName: u.FullName()}
}

type RegisterCustomerResponse struct {
	User   *UserResponse   `json:"user"`
	Points *PointsResponse `json:"points"`
}

// CustomerResponse is a customer row of the admin listing
type CustomerResponse struct {
	*UserResponse
	Points   int64  `json:"points"`
	TierName string `json:"tier"`
}

func NewCustomerResponse(u *user.User, p *points.Points, tierName string) *CustomerResponse {
	return &CustomerResponse{
		UserResponse: NewUserResponse(u),
		Points:       lo.Ternary(p != nil, lo.FromPtr(p).AvailablePoints, 0),
		TierName:     tierName,
	}
}

type ListCustomersResponse = types.ListResponse[*CustomerResponse]

type UpdateCustomerTierRequest struct {
	TierID string `json:"tier_id" validate:"required"`
}

func (r *UpdateCustomerTierRequest) Validate() error {
	return validator.ValidateRequest(r)
}
