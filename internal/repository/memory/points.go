package memory

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/domain/points"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/samber/lo"
)

type PointsStore struct {
	balances     *Store[points.Points]
	transactions *Store[points.Transaction]
}

func NewPointsStore() *PointsStore {
	return &PointsStore{
		balances:     NewStore[points.Points]("points balance"),
		transactions: NewStore[points.Transaction]("transaction"),
	}
}

func (s *PointsStore) CreatePoints(ctx context.Context, p *points.Points) error {
	return s.balances.Create(ctx, p.CustomerID, p)
}

func (s *PointsStore) GetPoints(ctx context.Context, customerID string) (*points.Points, error) {
	return s.balances.Get(ctx, customerID)
}

// GetPointsForUpdate has no row lock to take here; the ledger's keyed
// mutex is what serialises writers.
func (s *PointsStore) GetPointsForUpdate(ctx context.Context, customerID string) (*points.Points, error) {
	return s.balances.Get(ctx, customerID)
}

func (s *PointsStore) UpdatePoints(ctx context.Context, p *points.Points) error {
	return s.balances.Update(ctx, p.CustomerID, p)
}

func (s *PointsStore) CreateTransaction(ctx context.Context, tx *points.Transaction) error {
	if tx.IdempotencyKey != nil {
		if _, err := s.GetTransactionByIdempotencyKey(ctx, tx.CustomerID, *tx.IdempotencyKey); err == nil {
			return ierr.NewError("transaction already exists").
				WithHint("A transaction with this idempotency key already exists").
				WithReportableDetails(map[string]any{
					"idempotency_key": *tx.IdempotencyKey,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
	}
	stored := *tx
	stored.Metadata = tx.Metadata.Copy()
	return s.transactions.Create(ctx, tx.ID, &stored)
}

func (s *PointsStore) GetTransactionByID(ctx context.Context, id string) (*points.Transaction, error) {
	return s.transactions.Get(ctx, id)
}

func (s *PointsStore) GetTransactionByIdempotencyKey(ctx context.Context, customerID, key string) (*points.Transaction, error) {
	tx, ok := s.transactions.Find(ctx, func(_ context.Context, t *points.Transaction) bool {
		return t.CustomerID == customerID && t.IdempotencyKey != nil && *t.IdempotencyKey == key
	})
	if !ok {
		return nil, s.transactions.notFound(key)
	}
	return tx, nil
}

// ListTransactions returns matching transactions newest first
func (s *PointsStore) ListTransactions(ctx context.Context, filter *types.TransactionFilter) ([]*points.Transaction, error) {
	if filter == nil {
		filter = types.NewTransactionFilter()
	}
	items := s.transactions.List(ctx, transactionFilterFn(filter), func(a, b *points.Transaction) bool {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID > b.ID
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	if filter.QueryFilter == nil {
		return items, nil
	}
	return paginate(items, filter.GetLimit(), filter.GetOffset(), filter.IsUnlimited()), nil
}

func (s *PointsStore) SumTransactionPoints(ctx context.Context, filter *types.TransactionFilter) (int64, error) {
	if filter == nil {
		filter = &types.TransactionFilter{}
	}
	items := s.transactions.List(ctx, transactionFilterFn(filter), nil)
	return lo.SumBy(items, func(t *points.Transaction) int64 {
		return t.Points
	}), nil
}

func (s *PointsStore) Clear() {
	s.balances.Clear()
	s.transactions.Clear()
}

func transactionFilterFn(filter *types.TransactionFilter) FilterFunc[points.Transaction] {
	return func(_ context.Context, t *points.Transaction) bool {
		if filter.CustomerID != "" && t.CustomerID != filter.CustomerID {
			return false
		}
		if len(filter.CustomerIDs) > 0 && !lo.Contains(filter.CustomerIDs, t.CustomerID) {
			return false
		}
		if filter.Type != nil && t.Type != *filter.Type {
			return false
		}
		return true
	}
}
