package memory

import (
	"context"
	"strings"

	"github.com/cbo-rewards/loyalty/internal/domain/user"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
)

type UserStore struct {
	*Store[user.User]
}

func NewUserStore() *UserStore {
	return &UserStore{Store: NewStore[user.User]("user")}
}

func (s *UserStore) Create(ctx context.Context, u *user.User) error {
	_, taken := s.Find(ctx, func(_ context.Context, existing *user.User) bool {
		return strings.EqualFold(existing.Username, u.Username) ||
			(u.Email != "" && strings.EqualFold(existing.Email, u.Email))
	})
	if taken {
		return ierr.NewError("user already exists").
			WithHint("A user with this username or email already exists").
			WithReportableDetails(map[string]any{
				"username": u.Username,
				"email":    u.Email,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	return s.Store.Create(ctx, u.ID, u)
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	return s.Store.Get(ctx, id)
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	u, ok := s.Find(ctx, func(_ context.Context, u *user.User) bool {
		return strings.EqualFold(u.Username, username)
	})
	if !ok {
		return nil, s.notFound(username)
	}
	return u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := s.Find(ctx, func(_ context.Context, u *user.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if !ok {
		return nil, s.notFound(email)
	}
	return u, nil
}

func (s *UserStore) List(ctx context.Context, filter *types.UserFilter) ([]*user.User, error) {
	if filter == nil {
		filter = types.NewNoLimitUserFilter()
	}
	items := s.Store.List(ctx, userFilterFn(filter), func(a, b *user.User) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	})
	if filter.QueryFilter == nil {
		return items, nil
	}
	return paginate(items, filter.GetLimit(), filter.GetOffset(), filter.IsUnlimited()), nil
}

func (s *UserStore) Count(ctx context.Context, filter *types.UserFilter) (int, error) {
	if filter == nil {
		filter = types.NewNoLimitUserFilter()
	}
	return s.Store.Count(ctx, userFilterFn(filter)), nil
}

func (s *UserStore) Update(ctx context.Context, u *user.User) error {
	return s.Store.Update(ctx, u.ID, u)
}

func userFilterFn(filter *types.UserFilter) FilterFunc[user.User] {
	return func(_ context.Context, u *user.User) bool {
		if filter.Role != nil && u.Role != *filter.Role {
			return false
		}
		if filter.BranchID != nil && (u.BranchID == nil || *u.BranchID != *filter.BranchID) {
			return false
		}
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			return false
		}
		return true
	}
}
