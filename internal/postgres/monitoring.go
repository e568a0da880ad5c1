package postgres

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/logger"
	sentryService "github.com/cbo-rewards/loyalty/internal/sentry"
)

// SentryClient wraps a unit-of-work client with a Sentry span per transaction
type SentryClient struct {
	client IClient
	sentry *sentryService.Service
	logger *logger.Logger
}

func NewSentryClient(client IClient, sentry *sentryService.Service, logger *logger.Logger) IClient {
	if !sentry.Enabled() {
		return client
	}
	return &SentryClient{
		client: client,
		sentry: sentry,
		logger: logger,
	}
}

func (c *SentryClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	span, spanCtx := c.sentry.StartDBSpan(ctx, "db.transaction")
	if span != nil {
		defer span.Finish()
	}

	err := c.client.WithTx(spanCtx, fn)
	if err != nil && span != nil {
		span.SetData("error", err.Error())
	}
	return err
}
