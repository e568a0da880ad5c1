package postgres

import (
	"context"
)

// IClient is the unit-of-work boundary services depend on. Every repository
// call made with the ctx handed to fn joins the same transaction.
type IClient interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

var _ IClient = (*DB)(nil)
