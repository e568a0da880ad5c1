package user

import (
	"fmt"
	"time"

	"github.com/cbo-rewards/loyalty/internal/types"
)

// User is a bank identity. Customers own a points balance; admins and
// branch managers administer the programme.
type User struct {
	ID          string         `db:"id" json:"id"`
	Username    string         `db:"username" json:"username"`
	Email       string         `db:"email" json:"email"`
	FirstName   string         `db:"first_name" json:"first_name"`
	LastName    string         `db:"last_name" json:"last_name"`
	PhoneNumber *string        `db:"phone_number" json:"phone_number,omitempty"`
	BankingID   *string        `db:"banking_id" json:"banking_id,omitempty"`
	Role        types.UserRole `db:"role" json:"role"`
	BranchID    *string        `db:"branch_id" json:"branch_id,omitempty"`
	IsActive    bool           `db:"is_active" json:"is_active"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

func (u *User) IsCustomer() bool {
	return u.Role == types.UserRoleCustomer
}
