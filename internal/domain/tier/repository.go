package tier

import "context"

type Repository interface {
	// Tier operations
	Create(ctx context.Context, tier *Tier) error
	Get(ctx context.Context, id string) (*Tier, error)
	// List returns tiers ordered by MinimumPoints ascending
	List(ctx context.Context) ([]*Tier, error)
	Update(ctx context.Context, tier *Tier) error
	Delete(ctx context.Context, id string) error

	// Assignment operations
	GetAssignment(ctx context.Context, customerID string) (*Assignment, error)
	// UpsertAssignment replaces the customer's current assignment
	UpsertAssignment(ctx context.Context, a *Assignment) error
	CountAssignmentsByTier(ctx context.Context, tierID string) (int, error)
}
