package publisher

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/domain/events"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/pubsub"
	"github.com/cbo-rewards/loyalty/internal/types"
	"go.uber.org/zap"
)

// EventPublisher emits loyalty events after the ledger change they describe
// has committed
type EventPublisher interface {
	Publish(ctx context.Context, event *events.Event) error
}

type eventPublisher struct {
	pubsub pubsub.Publisher
	topic  string
	logger *logger.Logger
}

func NewEventPublisher(cfg *config.Configuration, logger *logger.Logger, ps pubsub.PubSub) EventPublisher {
	if !cfg.Event.Enabled {
		logger.Info("event publishing is disabled")
		return noopPublisher{}
	}
	return &eventPublisher{
		pubsub: ps,
		topic:  cfg.EventTopic(),
		logger: logger,
	}
}

func (p *eventPublisher) Publish(ctx context.Context, event *events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to marshal event").
			Mark(ierr.ErrSystem)
	}

	p.logger.With(
		zap.String("event_id", event.ID),
		zap.String("event_name", event.EventName),
		zap.String("customer_id", event.CustomerID),
	).Debug("publishing event")

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_name", event.EventName)
	if requestID := types.GetRequestID(ctx); requestID != "" {
		msg.Metadata.Set("request_id", requestID)
	}

	if err := p.pubsub.Publish(ctx, p.topic, msg); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to publish event").
			Mark(ierr.ErrSystem)
	}
	return nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, *events.Event) error { return nil }
