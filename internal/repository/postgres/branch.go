package postgres

import (
	"context"
	"fmt"

	"github.com/cbo-rewards/loyalty/internal/domain/branch"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/postgres"
)

type branchRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewBranchRepository(db *postgres.DB, logger *logger.Logger) branch.Repository {
	return &branchRepository{db: db, logger: logger}
}

const branchColumns = `id, name, slug, code, city, region, manager, is_active, created_at`

func (r *branchRepository) Create(ctx context.Context, b *branch.Branch) error {
	query := `
	INSERT INTO branches (id, name, slug, code, city, region, manager, is_active, created_at)
	VALUES (:id, :name, :slug, :code, :city, :region, :manager, :is_active, :created_at)`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, b)
	return wrapError(err, "branch", map[string]any{"code": b.Code, "slug": b.Slug})
}

func (r *branchRepository) Get(ctx context.Context, id string) (*branch.Branch, error) {
	return r.getBy(ctx, "id", id)
}

func (r *branchRepository) GetBySlug(ctx context.Context, slug string) (*branch.Branch, error) {
	return r.getBy(ctx, "slug", slug)
}

func (r *branchRepository) GetByCode(ctx context.Context, code string) (*branch.Branch, error) {
	return r.getBy(ctx, "code", code)
}

func (r *branchRepository) getBy(ctx context.Context, column, value string) (*branch.Branch, error) {
	query := fmt.Sprintf(`SELECT %s FROM branches WHERE %s = $1`, branchColumns, column)

	var b branch.Branch
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &b, query, value); err != nil {
		return nil, wrapError(err, "branch", map[string]any{column: value})
	}
	return &b, nil
}

func (r *branchRepository) List(ctx context.Context) ([]*branch.Branch, error) {
	query := fmt.Sprintf(`SELECT %s FROM branches ORDER BY name ASC`, branchColumns)

	var branches []*branch.Branch
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &branches, query); err != nil {
		return nil, wrapError(err, "branch", nil)
	}
	return branches, nil
}

func (r *branchRepository) Update(ctx context.Context, b *branch.Branch) error {
	query := `
	UPDATE branches SET
		name = :name,
		slug = :slug,
		code = :code,
		city = :city,
		region = :region,
		manager = :manager,
		is_active = :is_active
	WHERE id = :id`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, b)
	if err != nil {
		return wrapError(err, "branch", map[string]any{"branch_id": b.ID})
	}
	return expectAffected(res, "branch", map[string]any{"branch_id": b.ID})
}
