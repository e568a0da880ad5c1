package postgres

import (
	"context"
	"fmt"

	"github.com/cbo-rewards/loyalty/internal/domain/reward"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/postgres"
	"github.com/cbo-rewards/loyalty/internal/types"
)

type rewardRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewRewardRepository(db *postgres.DB, logger *logger.Logger) reward.Repository {
	return &rewardRepository{db: db, logger: logger}
}

const rewardColumns = `id, name, description, type, category, provider, terms, cost, value,
	stock, is_active, created_at`

func (r *rewardRepository) Create(ctx context.Context, rw *reward.Reward) error {
	query := `
	INSERT INTO rewards (
		id, name, description, type, category, provider, terms, cost, value,
		stock, is_active, created_at
	) VALUES (
		:id, :name, :description, :type, :category, :provider, :terms, :cost, :value,
		:stock, :is_active, :created_at
	)`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, rw)
	return wrapError(err, "reward", map[string]any{"reward_id": rw.ID})
}

func (r *rewardRepository) Get(ctx context.Context, id string) (*reward.Reward, error) {
	return r.get(ctx, id, "")
}

func (r *rewardRepository) GetForUpdate(ctx context.Context, id string) (*reward.Reward, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *rewardRepository) get(ctx context.Context, id, lock string) (*reward.Reward, error) {
	query := fmt.Sprintf(`SELECT %s FROM rewards WHERE id = $1%s`, rewardColumns, lock)

	var rw reward.Reward
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &rw, query, id); err != nil {
		return nil, wrapError(err, "reward", map[string]any{"reward_id": id})
	}
	return &rw, nil
}

func (r *rewardRepository) List(ctx context.Context, filter *types.RewardFilter) ([]*reward.Reward, error) {
	query := fmt.Sprintf(`SELECT %s FROM rewards`, rewardColumns)
	if filter != nil && filter.ActiveOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY cost ASC, name ASC`

	var rewards []*reward.Reward
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &rewards, query); err != nil {
		return nil, wrapError(err, "reward", nil)
	}
	return rewards, nil
}

func (r *rewardRepository) Update(ctx context.Context, rw *reward.Reward) error {
	query := `
	UPDATE rewards SET
		name = :name,
		description = :description,
		type = :type,
		category = :category,
		provider = :provider,
		terms = :terms,
		cost = :cost,
		value = :value,
		stock = :stock,
		is_active = :is_active
	WHERE id = :id`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, rw)
	if err != nil {
		return wrapError(err, "reward", map[string]any{"reward_id": rw.ID})
	}
	return expectAffected(res, "reward", map[string]any{"reward_id": rw.ID})
}

func (r *rewardRepository) DecrementStock(ctx context.Context, id string) error {
	query := `
	UPDATE rewards SET stock = CASE WHEN stock = $2 THEN stock ELSE stock - 1 END
	WHERE id = $1 AND (stock = $2 OR stock > 0)`

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, id, types.UnlimitedStock)
	if err != nil {
		return wrapError(err, "reward", map[string]any{"reward_id": id})
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapError(err, "reward", map[string]any{"reward_id": id})
	}
	if n == 0 {
		return ierr.NewError("reward out of stock").
			WithHint("This reward is out of stock").
			WithReportableDetails(map[string]any{
				"reward_id": id,
			}).
			Mark(ierr.ErrOutOfStock)
	}
	return nil
}

func (r *rewardRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM rewards WHERE id = $1`, id)
	if err != nil {
		return wrapError(err, "reward", map[string]any{"reward_id": id})
	}
	return expectAffected(res, "reward", map[string]any{"reward_id": id})
}
