package branch

import "context"

type Repository interface {
	Create(ctx context.Context, b *Branch) error
	Get(ctx context.Context, id string) (*Branch, error)
	GetBySlug(ctx context.Context, slug string) (*Branch, error)
	GetByCode(ctx context.Context, code string) (*Branch, error)
	List(ctx context.Context) ([]*Branch, error)
	Update(ctx context.Context, b *Branch) error
}
