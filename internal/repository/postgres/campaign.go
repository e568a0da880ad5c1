package postgres

import (
	"context"
	"fmt"

	"github.com/cbo-rewards/loyalty/internal/domain/campaign"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/postgres"
	"github.com/cbo-rewards/loyalty/internal/types"
)

type campaignRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewCampaignRepository(db *postgres.DB, logger *logger.Logger) campaign.Repository {
	return &campaignRepository{db: db, logger: logger}
}

const campaignColumns = `id, name, description, type, start_date, end_date, rules, target_customers,
	budget, spent, participants, status, created_by, created_at, updated_at`

func (r *campaignRepository) Create(ctx context.Context, c *campaign.Campaign) error {
	query := `
	INSERT INTO campaigns (
		id, name, description, type, start_date, end_date, rules, target_customers,
		budget, spent, participants, status, created_by, created_at, updated_at
	) VALUES (
		:id, :name, :description, :type, :start_date, :end_date, :rules, :target_customers,
		:budget, :spent, :participants, :status, :created_by, :created_at, :updated_at
	)`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c)
	return wrapError(err, "campaign", map[string]any{"campaign_id": c.ID})
}

func (r *campaignRepository) Get(ctx context.Context, id string) (*campaign.Campaign, error) {
	query := fmt.Sprintf(`SELECT %s FROM campaigns WHERE id = $1`, campaignColumns)

	var c campaign.Campaign
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, id); err != nil {
		return nil, wrapError(err, "campaign", map[string]any{"campaign_id": id})
	}
	return &c, nil
}

func (r *campaignRepository) List(ctx context.Context, filter *types.CampaignFilter) ([]*campaign.Campaign, error) {
	query := fmt.Sprintf(`SELECT %s FROM campaigns`, campaignColumns)
	var args []any
	if filter != nil && filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY start_date ASC`

	var campaigns []*campaign.Campaign
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &campaigns, query, args...); err != nil {
		return nil, wrapError(err, "campaign", nil)
	}
	return campaigns, nil
}

func (r *campaignRepository) Update(ctx context.Context, c *campaign.Campaign) error {
	query := `
	UPDATE campaigns SET
		name = :name,
		description = :description,
		type = :type,
		start_date = :start_date,
		end_date = :end_date,
		rules = :rules,
		target_customers = :target_customers,
		budget = :budget,
		spent = :spent,
		participants = :participants,
		status = :status,
		updated_at = :updated_at
	WHERE id = :id`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c)
	if err != nil {
		return wrapError(err, "campaign", map[string]any{"campaign_id": c.ID})
	}
	return expectAffected(res, "campaign", map[string]any{"campaign_id": c.ID})
}

func (r *campaignRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return wrapError(err, "campaign", map[string]any{"campaign_id": id})
	}
	return expectAffected(res, "campaign", map[string]any{"campaign_id": id})
}
