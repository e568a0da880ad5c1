package postgres

import (
	"context"
	"fmt"

	"github.com/cbo-rewards/loyalty/internal/domain/tier"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/postgres"
)

type tierRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewTierRepository(db *postgres.DB, logger *logger.Logger) tier.Repository {
	return &tierRepository{db: db, logger: logger}
}

const tierColumns = `id, name, minimum_points, multiplier, benefits, color, is_active, created_at`

func (r *tierRepository) Create(ctx context.Context, t *tier.Tier) error {
	query := `
	INSERT INTO tiers (id, name, minimum_points, multiplier, benefits, color, is_active, created_at)
	VALUES (:id, :name, :minimum_points, :multiplier, :benefits, :color, :is_active, :created_at)`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, t)
	return wrapError(err, "tier", map[string]any{"tier_id": t.ID, "name": t.Name})
}

func (r *tierRepository) Get(ctx context.Context, id string) (*tier.Tier, error) {
	query := fmt.Sprintf(`SELECT %s FROM tiers WHERE id = $1`, tierColumns)

	var t tier.Tier
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &t, query, id); err != nil {
		return nil, wrapError(err, "tier", map[string]any{"tier_id": id})
	}
	return &t, nil
}

func (r *tierRepository) List(ctx context.Context) ([]*tier.Tier, error) {
	query := fmt.Sprintf(`SELECT %s FROM tiers ORDER BY minimum_points ASC, id ASC`, tierColumns)

	var tiers []*tier.Tier
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &tiers, query); err != nil {
		return nil, wrapError(err, "tier", nil)
	}
	return tiers, nil
}

func (r *tierRepository) Update(ctx context.Context, t *tier.Tier) error {
	query := `
	UPDATE tiers SET
		name = :name,
		minimum_points = :minimum_points,
		multiplier = :multiplier,
		benefits = :benefits,
		color = :color,
		is_active = :is_active
	WHERE id = :id`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, t)
	if err != nil {
		return wrapError(err, "tier", map[string]any{"tier_id": t.ID})
	}
	return expectAffected(res, "tier", map[string]any{"tier_id": t.ID})
}

func (r *tierRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM tiers WHERE id = $1`, id)
	if err != nil {
		return wrapError(err, "tier", map[string]any{"tier_id": id})
	}
	return expectAffected(res, "tier", map[string]any{"tier_id": id})
}

func (r *tierRepository) GetAssignment(ctx context.Context, customerID string) (*tier.Assignment, error) {
	query := `SELECT id, customer_id, tier_id, achieved_at FROM customer_tiers WHERE customer_id = $1`

	var a tier.Assignment
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &a, query, customerID); err != nil {
		return nil, wrapError(err, "tier assignment", map[string]any{"customer_id": customerID})
	}
	return &a, nil
}

func (r *tierRepository) UpsertAssignment(ctx context.Context, a *tier.Assignment) error {
	query := `
	INSERT INTO customer_tiers (id, customer_id, tier_id, achieved_at)
	VALUES (:id, :customer_id, :tier_id, :achieved_at)
	ON CONFLICT (customer_id) DO UPDATE SET
		tier_id = EXCLUDED.tier_id,
		achieved_at = EXCLUDED.achieved_at`

	r.logger.Debugw("assigning tier", "customer_id", a.CustomerID, "tier_id", a.TierID)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, a)
	return wrapError(err, "tier assignment", map[string]any{"customer_id": a.CustomerID})
}

func (r *tierRepository) CountAssignmentsByTier(ctx context.Context, tierID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM customer_tiers WHERE tier_id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, tierID); err != nil {
		return 0, wrapError(err, "tier assignment", map[string]any{"tier_id": tierID})
	}
	return count, nil
}
