package memory

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/postgres"
)

var _ postgres.IClient = (*Client)(nil)

// Client satisfies the unit-of-work boundary for the memory backend. There
// is no rollback: services validate before they write and the ledger lock
// serialises writers per customer.
type Client struct{}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
