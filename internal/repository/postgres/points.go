package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/cbo-rewards/loyalty/internal/domain/points"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/postgres"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/lib/pq"
)

type pointsRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPointsRepository(db *postgres.DB, logger *logger.Logger) points.Repository {
	return &pointsRepository{db: db, logger: logger}
}

const (
	pointsColumns = `customer_id, total_points, available_points, lifetime_earned,
	lifetime_redeemed, created_at, updated_at`
	transactionColumns = `id, customer_id, type, points, description, category, amount, currency,
	rule_id, campaign_id, status, idempotency_key, metadata, created_at`
)

func (r *pointsRepository) CreatePoints(ctx context.Context, p *points.Points) error {
	query := `
	INSERT INTO points (
		customer_id, total_points, available_points, lifetime_earned,
		lifetime_redeemed, created_at, updated_at
	) VALUES (
		:customer_id, :total_points, :available_points, :lifetime_earned,
		:lifetime_redeemed, :created_at, :updated_at
	)`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p)
	return wrapError(err, "points balance", map[string]any{"customer_id": p.CustomerID})
}

func (r *pointsRepository) GetPoints(ctx context.Context, customerID string) (*points.Points, error) {
	return r.getPoints(ctx, customerID, "")
}

func (r *pointsRepository) GetPointsForUpdate(ctx context.Context, customerID string) (*points.Points, error) {
	return r.getPoints(ctx, customerID, " FOR UPDATE")
}

func (r *pointsRepository) getPoints(ctx context.Context, customerID, lock string) (*points.Points, error) {
	query := fmt.Sprintf(`SELECT %s FROM points WHERE customer_id = $1%s`, pointsColumns, lock)

	var p points.Points
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &p, query, customerID); err != nil {
		return nil, wrapError(err, "points balance", map[string]any{"customer_id": customerID})
	}
	return &p, nil
}

func (r *pointsRepository) UpdatePoints(ctx context.Context, p *points.Points) error {
	query := `
	UPDATE points SET
		total_points = :total_points,
		available_points = :available_points,
		lifetime_earned = :lifetime_earned,
		lifetime_redeemed = :lifetime_redeemed,
		updated_at = :updated_at
	WHERE customer_id = :customer_id`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p)
	if err != nil {
		return wrapError(err, "points balance", map[string]any{"customer_id": p.CustomerID})
	}
	return expectAffected(res, "points balance", map[string]any{"customer_id": p.CustomerID})
}

func (r *pointsRepository) CreateTransaction(ctx context.Context, tx *points.Transaction) error {
	query := `
	INSERT INTO transactions (
		id, customer_id, type, points, description, category, amount, currency,
		rule_id, campaign_id, status, idempotency_key, metadata, created_at
	) VALUES (
		:id, :customer_id, :type, :points, :description, :category, :amount, :currency,
		:rule_id, :campaign_id, :status, :idempotency_key, :metadata, :created_at
	)`

	r.logger.Debugw("recording points transaction",
		"transaction_id", tx.ID,
		"customer_id", tx.CustomerID,
		"type", tx.Type,
		"points", tx.Points,
	)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, tx)
	return wrapError(err, "transaction", map[string]any{"transaction_id": tx.ID})
}

func (r *pointsRepository) GetTransactionByID(ctx context.Context, id string) (*points.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE id = $1`, transactionColumns)

	var t points.Transaction
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &t, query, id); err != nil {
		return nil, wrapError(err, "transaction", map[string]any{"transaction_id": id})
	}
	return &t, nil
}

func (r *pointsRepository) GetTransactionByIdempotencyKey(ctx context.Context, customerID, key string) (*points.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE customer_id = $1 AND idempotency_key = $2`, transactionColumns)

	var t points.Transaction
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &t, query, customerID, key); err != nil {
		return nil, wrapError(err, "transaction", map[string]any{"idempotency_key": key})
	}
	return &t, nil
}

func (r *pointsRepository) ListTransactions(ctx context.Context, filter *types.TransactionFilter) ([]*points.Transaction, error) {
	if filter == nil {
		filter = types.NewTransactionFilter()
	}
	where, args := transactionWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM transactions %s ORDER BY created_at DESC, id DESC`, transactionColumns, where)
	if filter.QueryFilter != nil && !filter.IsUnlimited() {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.GetLimit(), filter.GetOffset())
	}

	var txs []*points.Transaction
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &txs, query, args...); err != nil {
		return nil, wrapError(err, "transaction", nil)
	}
	return txs, nil
}

func (r *pointsRepository) SumTransactionPoints(ctx context.Context, filter *types.TransactionFilter) (int64, error) {
	if filter == nil {
		filter = &types.TransactionFilter{}
	}
	where, args := transactionWhere(filter)

	var sum int64
	query := `SELECT COALESCE(SUM(points), 0) FROM transactions ` + where
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &sum, query, args...); err != nil {
		return 0, wrapError(err, "transaction", nil)
	}
	return sum, nil
}

func transactionWhere(filter *types.TransactionFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if len(filter.CustomerIDs) > 0 {
		args = append(args, pq.Array(filter.CustomerIDs))
		clauses = append(clauses, fmt.Sprintf("customer_id = ANY($%d)", len(args)))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("type = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}
