package types

import (
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/samber/lo"
)

type UserRole string

const (
	UserRoleAdmin         UserRole = "admin"
	UserRoleBranchManager UserRole = "branch_manager"
	UserRoleCustomer      UserRole = "customer"
)

func (r UserRole) Validate() error {
	allowed := []UserRole{UserRoleAdmin, UserRoleBranchManager, UserRoleCustomer}
	if !lo.Contains(allowed, r) {
		return ierr.NewError("invalid user role").
			WithHintf("Role must be one of %v", allowed).
			WithReportableDetails(map[string]any{
				"role": r,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
