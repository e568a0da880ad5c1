package postgres

import (
	"context"
	"fmt"

	"github.com/cbo-rewards/loyalty/internal/domain/redemption"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/postgres"
	"github.com/cbo-rewards/loyalty/internal/types"
)

type redemptionRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewRedemptionRepository(db *postgres.DB, logger *logger.Logger) redemption.Repository {
	return &redemptionRepository{db: db, logger: logger}
}

const redemptionColumns = `id, customer_id, reward_id, points_used, value, status, code,
	expires_at, redeemed_at, created_at`

func (r *redemptionRepository) Create(ctx context.Context, rd *redemption.Redemption) error {
	query := `
	INSERT INTO redemptions (
		id, customer_id, reward_id, points_used, value, status, code,
		expires_at, redeemed_at, created_at
	) VALUES (
		:id, :customer_id, :reward_id, :points_used, :value, :status, :code,
		:expires_at, :redeemed_at, :created_at
	)`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, rd)
	return wrapError(err, "redemption", map[string]any{"redemption_id": rd.ID})
}

func (r *redemptionRepository) Get(ctx context.Context, id string) (*redemption.Redemption, error) {
	query := fmt.Sprintf(`SELECT %s FROM redemptions WHERE id = $1`, redemptionColumns)

	var rd redemption.Redemption
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &rd, query, id); err != nil {
		return nil, wrapError(err, "redemption", map[string]any{"redemption_id": id})
	}
	return &rd, nil
}

func (r *redemptionRepository) List(ctx context.Context, filter *types.RedemptionFilter) ([]*redemption.Redemption, error) {
	if filter == nil {
		filter = types.NewRedemptionFilter()
	}

	query := fmt.Sprintf(`SELECT %s FROM redemptions`, redemptionColumns)
	var args []any
	if filter.CustomerID != "" {
		query += ` WHERE customer_id = $1`
		args = append(args, filter.CustomerID)
	}
	query += ` ORDER BY redeemed_at DESC, id DESC`
	if filter.QueryFilter != nil && !filter.IsUnlimited() {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.GetLimit(), filter.GetOffset())
	}

	var items []*redemption.Redemption
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &items, query, args...); err != nil {
		return nil, wrapError(err, "redemption", nil)
	}
	return items, nil
}
