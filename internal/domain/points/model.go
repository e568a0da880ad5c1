package points

import (
	"time"
)

// Points is the single balance row a customer owns. It is only ever
// mutated by the ledger in response to a Transaction.
type Points struct {
	CustomerID       string    `db:"customer_id" json:"customer_id"`
	TotalPoints      int64     `db:"total_points" json:"total_points"`
	AvailablePoints  int64     `db:"available_points" json:"available_points"`
	LifetimeEarned   int64     `db:"lifetime_earned" json:"lifetime_earned"`
	LifetimeRedeemed int64     `db:"lifetime_redeemed" json:"lifetime_redeemed"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// NewPoints returns the zeroed balance created at registration
func NewPoints(customerID string) *Points {
	now := time.Now().UTC()
	return &Points{
		CustomerID: customerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
