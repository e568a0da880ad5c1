package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/cbo-rewards/loyalty/internal/domain/rule"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/postgres"
	"github.com/cbo-rewards/loyalty/internal/types"
)

type ruleRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewRuleRepository(db *postgres.DB, logger *logger.Logger) rule.Repository {
	return &ruleRepository{db: db, logger: logger}
}

const ruleColumns = `id, name, category, service_type, points_per_unit, unit, unit_value,
	minimum_amount, maximum_points, multiplier, conditions, is_active, created_at, updated_at`

func (r *ruleRepository) Create(ctx context.Context, ru *rule.Rule) error {
	query := `
	INSERT INTO rules (
		id, name, category, service_type, points_per_unit, unit, unit_value,
		minimum_amount, maximum_points, multiplier, conditions, is_active, created_at, updated_at
	) VALUES (
		:id, :name, :category, :service_type, :points_per_unit, :unit, :unit_value,
		:minimum_amount, :maximum_points, :multiplier, :conditions, :is_active, :created_at, :updated_at
	)`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, ru)
	return wrapError(err, "rule", map[string]any{"rule_id": ru.ID})
}

func (r *ruleRepository) Get(ctx context.Context, id string) (*rule.Rule, error) {
	query := fmt.Sprintf(`SELECT %s FROM rules WHERE id = $1`, ruleColumns)

	var ru rule.Rule
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &ru, query, id); err != nil {
		return nil, wrapError(err, "rule", map[string]any{"rule_id": id})
	}
	return &ru, nil
}

func (r *ruleRepository) List(ctx context.Context, filter *types.RuleFilter) ([]*rule.Rule, error) {
	if filter == nil {
		filter = &types.RuleFilter{}
	}

	var (
		clauses []string
		args    []any
	)
	if filter.ActiveOnly {
		clauses = append(clauses, "is_active = TRUE")
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.ServiceType != "" {
		args = append(args, filter.ServiceType)
		clauses = append(clauses, fmt.Sprintf("service_type = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM rules`, ruleColumns)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at ASC, id ASC"

	var rules []*rule.Rule
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &rules, query, args...); err != nil {
		return nil, wrapError(err, "rule", nil)
	}
	return rules, nil
}

func (r *ruleRepository) Update(ctx context.Context, ru *rule.Rule) error {
	query := `
	UPDATE rules SET
		name = :name,
		category = :category,
		service_type = :service_type,
		points_per_unit = :points_per_unit,
		unit = :unit,
		unit_value = :unit_value,
		minimum_amount = :minimum_amount,
		maximum_points = :maximum_points,
		multiplier = :multiplier,
		conditions = :conditions,
		is_active = :is_active,
		updated_at = :updated_at
	WHERE id = :id`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, ru)
	if err != nil {
		return wrapError(err, "rule", map[string]any{"rule_id": ru.ID})
	}
	return expectAffected(res, "rule", map[string]any{"rule_id": ru.ID})
}

func (r *ruleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM rules WHERE id = $1`, id)
	if err != nil {
		return wrapError(err, "rule", map[string]any{"rule_id": id})
	}
	return expectAffected(res, "rule", map[string]any{"rule_id": id})
}
