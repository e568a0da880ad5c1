package audit

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/domain/events"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/pubsub"
	"github.com/cbo-rewards/loyalty/internal/pubsub/router"
	"github.com/cbo-rewards/loyalty/internal/pyroscope"
	"github.com/cbo-rewards/loyalty/internal/sentry"
)

const handlerName = "loyalty_event_audit"

// Consumer writes every loyalty event to the structured audit log
type Consumer struct {
	cfg        *config.Configuration
	subscriber pubsub.Subscriber
	logger     *logger.Logger
	sentry     *sentry.Service
	pyroscope  *pyroscope.Service
}

func NewConsumer(
	cfg *config.Configuration,
	subscriber pubsub.PubSub,
	logger *logger.Logger,
	sentry *sentry.Service,
	pyroscope *pyroscope.Service,
) *Consumer {
	return &Consumer{
		cfg:        cfg,
		subscriber: subscriber,
		logger:     logger,
		sentry:     sentry,
		pyroscope:  pyroscope,
	}
}

// RegisterHandler attaches the consumer to the event router
func (c *Consumer) RegisterHandler(r *router.Router) {
	if !c.cfg.Event.Enabled {
		return
	}
	r.AddNoPublishHandler(handlerName, c.cfg.EventTopic(), c.subscriber, c.Handle)
}

// Handle decodes and records one event. Undecodable payloads are terminal.
func (c *Consumer) Handle(msg *message.Message) error {
	var event events.Event
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return ierr.WithError(err).
			WithHint("Malformed loyalty event payload").
			WithReportableDetails(map[string]any{
				"message_uuid": msg.UUID,
			}).
			Mark(ierr.ErrValidation)
	}

	ctx := msg.Context()
	span, ctx := c.sentry.StartEventSpan(ctx, event.EventName, event.Timestamp)
	if span != nil {
		defer span.Finish()
	}

	c.pyroscope.TagWrapper(ctx, map[string]string{"event_name": event.EventName}, func(ctx context.Context) {
		c.logger.Infow("loyalty event",
			"event_id", event.ID,
			"event_name", event.EventName,
			"customer_id", event.CustomerID,
			"timestamp", event.Timestamp,
			"request_id", msg.Metadata.Get("request_id"),
			"properties", event.Properties,
		)
		c.sentry.AddBreadcrumb("loyalty", event.EventName, map[string]interface{}{
			"event_id":    event.ID,
			"customer_id": event.CustomerID,
		})
	})
	return nil
}
