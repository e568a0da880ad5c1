package branch

import (
	"time"

	ierr "github.com/cbo-rewards/loyalty/internal/errors"
)

// Branch groups customers for reporting. It has no effect on earning.
type Branch struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	Code      string    `db:"code" json:"code"`
	City      string    `db:"city" json:"city"`
	Region    string    `db:"region" json:"region"`
	Manager   *string   `db:"manager" json:"manager,omitempty"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (b *Branch) Validate() error {
	if b.Name == "" || b.Code == "" {
		return ierr.NewError("branch name and code are required").
			WithHint("Branch name and code are required").
			Mark(ierr.ErrValidation)
	}
	return nil
}
