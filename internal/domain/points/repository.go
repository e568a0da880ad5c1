package points

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/types"
)

// Repository persists balances and their transaction log. Implementations
// must honour a transaction carried in ctx so a balance update and the
// transaction insert commit together.
type Repository interface {
	// Balance operations
	CreatePoints(ctx context.Context, p *Points) error
	GetPoints(ctx context.Context, customerID string) (*Points, error)
	// GetPointsForUpdate reads the balance and locks the row until the
	// surrounding transaction ends, where the backend supports row locks
	GetPointsForUpdate(ctx context.Context, customerID string) (*Points, error)
	UpdatePoints(ctx context.Context, p *Points) error

	// Transaction log operations
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransactionByID(ctx context.Context, id string) (*Transaction, error)
	GetTransactionByIdempotencyKey(ctx context.Context, customerID, key string) (*Transaction, error)
	ListTransactions(ctx context.Context, filter *types.TransactionFilter) ([]*Transaction, error)
	SumTransactionPoints(ctx context.Context, filter *types.TransactionFilter) (int64, error)
}
