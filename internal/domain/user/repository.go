package user

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/types"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter *types.UserFilter) ([]*User, error)
	Count(ctx context.Context, filter *types.UserFilter) (int, error)
	Update(ctx context.Context, user *User) error
}
