package campaign

import (
	"time"

	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/shopspring/decimal"
)

// Campaign is a time boxed promotion. Campaigns are catalog entries only:
// the earn calculation never reads them.
type Campaign struct {
	ID              string               `db:"id" json:"id"`
	Name            string               `db:"name" json:"name"`
	Description     string               `db:"description" json:"description"`
	Type            string               `db:"type" json:"type"`
	StartDate       time.Time            `db:"start_date" json:"start_date"`
	EndDate         time.Time            `db:"end_date" json:"end_date"`
	Rules           types.JSONMap        `db:"rules" json:"rules"`
	TargetCustomers types.StringList     `db:"target_customers" json:"target_customers"`
	Budget          *decimal.Decimal     `db:"budget" json:"budget,omitempty"`
	Spent           decimal.Decimal      `db:"spent" json:"spent"`
	Participants    int64                `db:"participants" json:"participants"`
	Status          types.CampaignStatus `db:"status" json:"status"`
	CreatedBy       string               `db:"created_by" json:"created_by"`
	CreatedAt       time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time            `db:"updated_at" json:"updated_at"`
}

// IsRunning reports whether the campaign is marked active and t is inside its window
func (c *Campaign) IsRunning(t time.Time) bool {
	return c.Status == types.CampaignStatusActive &&
		!c.StartDate.After(t) &&
		!c.EndDate.Before(t)
}

func (c *Campaign) Validate() error {
	if c.Name == "" || c.Type == "" {
		return ierr.NewError("campaign name and type are required").
			WithHint("Campaign name and type are required").
			Mark(ierr.ErrValidation)
	}
	if !c.EndDate.After(c.StartDate) {
		return ierr.NewError("campaign end date must be after start date").
			WithHint("Campaign end date must be after its start date").
			WithReportableDetails(map[string]any{
				"start_date": c.StartDate,
				"end_date":   c.EndDate,
			}).
			Mark(ierr.ErrValidation)
	}
	return c.Status.Validate()
}
