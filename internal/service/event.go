package service

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/domain/events"
)

// publishEvent is fire and forget: the ledger change has already committed
// and a broker outage must not turn it into a client error
func (p ServiceParams) publishEvent(ctx context.Context, name, customerID string, properties map[string]any) {
	if p.EventPublisher == nil {
		return
	}
	event := events.NewEvent(name, customerID, properties)
	if err := p.EventPublisher.Publish(ctx, event); err != nil {
		p.Logger.Errorw("failed to publish event",
			"event_name", name,
			"customer_id", customerID,
			"error", err,
		)
	}
}
