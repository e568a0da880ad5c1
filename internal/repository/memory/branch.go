package memory

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/domain/branch"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
)

type BranchStore struct {
	*Store[branch.Branch]
}

func NewBranchStore() *BranchStore {
	return &BranchStore{Store: NewStore[branch.Branch]("branch")}
}

func (s *BranchStore) Create(ctx context.Context, b *branch.Branch) error {
	if _, taken := s.Find(ctx, func(_ context.Context, existing *branch.Branch) bool {
		return existing.Code == b.Code || existing.Slug == b.Slug
	}); taken {
		return ierr.NewError("branch already exists").
			WithHint("A branch with this code or slug already exists").
			WithReportableDetails(map[string]any{
				"code": b.Code,
				"slug": b.Slug,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	return s.Store.Create(ctx, b.ID, b)
}

func (s *BranchStore) GetBySlug(ctx context.Context, slug string) (*branch.Branch, error) {
	b, ok := s.Find(ctx, func(_ context.Context, b *branch.Branch) bool {
		return b.Slug == slug
	})
	if !ok {
		return nil, s.notFound(slug)
	}
	return b, nil
}

func (s *BranchStore) GetByCode(ctx context.Context, code string) (*branch.Branch, error) {
	b, ok := s.Find(ctx, func(_ context.Context, b *branch.Branch) bool {
		return b.Code == code
	})
	if !ok {
		return nil, s.notFound(code)
	}
	return b, nil
}

func (s *BranchStore) List(ctx context.Context) ([]*branch.Branch, error) {
	return s.Store.List(ctx, nil, func(a, b *branch.Branch) bool {
		return a.Name < b.Name
	}), nil
}

func (s *BranchStore) Update(ctx context.Context, b *branch.Branch) error {
	return s.Store.Update(ctx, b.ID, b)
}
