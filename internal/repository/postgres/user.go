package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/cbo-rewards/loyalty/internal/domain/user"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/postgres"
	"github.com/cbo-rewards/loyalty/internal/types"
)

type userRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

const userColumns = `id, username, email, first_name, last_name, phone_number, banking_id,
	role, branch_id, is_active, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	query := `
	INSERT INTO users (
		id, username, email, first_name, last_name, phone_number, banking_id,
		role, branch_id, is_active, created_at, updated_at
	) VALUES (
		:id, :username, :email, :first_name, :last_name, :phone_number, :banking_id,
		:role, :branch_id, :is_active, :created_at, :updated_at
	)`

	r.logger.Debugw("creating user", "user_id", u.ID, "username", u.Username, "role", u.Role)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, u)
	return wrapError(err, "user", map[string]any{"username": u.Username})
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.getBy(ctx, "lower(username)", strings.ToLower(username))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getBy(ctx, "lower(email)", strings.ToLower(email))
}

func (r *userRepository) getBy(ctx context.Context, column, value string) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)

	var u user.User
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, value); err != nil {
		return nil, wrapError(err, "user", map[string]any{column: value})
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context, filter *types.UserFilter) ([]*user.User, error) {
	if filter == nil {
		filter = types.NewNoLimitUserFilter()
	}
	where, args := userWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM users %s ORDER BY created_at ASC`, userColumns, where)
	if filter.QueryFilter != nil && !filter.IsUnlimited() {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.GetLimit(), filter.GetOffset())
	}

	var users []*user.User
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &users, query, args...); err != nil {
		return nil, wrapError(err, "user", nil)
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context, filter *types.UserFilter) (int, error) {
	if filter == nil {
		filter = types.NewNoLimitUserFilter()
	}
	where, args := userWhere(filter)

	var count int
	query := `SELECT COUNT(*) FROM users ` + where
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, wrapError(err, "user", nil)
	}
	return count, nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	query := `
	UPDATE users SET
		email = :email,
		first_name = :first_name,
		last_name = :last_name,
		phone_number = :phone_number,
		banking_id = :banking_id,
		role = :role,
		branch_id = :branch_id,
		is_active = :is_active,
		updated_at = :updated_at
	WHERE id = :id`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, u)
	if err != nil {
		return wrapError(err, "user", map[string]any{"user_id": u.ID})
	}
	return expectAffected(res, "user", map[string]any{"user_id": u.ID})
}

func userWhere(filter *types.UserFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		clauses = append(clauses, fmt.Sprintf("branch_id = $%d", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		clauses = append(clauses, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}
