package router

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/sentry"
	"github.com/cbo-rewards/loyalty/internal/types"
)

// Router runs the event consumers
type Router struct {
	router *message.Router
	logger *logger.Logger
	sentry *sentry.Service
	dlq    *gochannel.GoChannel
}

func NewRouter(cfg *config.Configuration, logger *logger.Logger, sentry *sentry.Service) (*Router, error) {
	wmLogger := watermill.NewStdLogger(cfg.Logging.Level == types.LogLevelDebug, false)

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		return nil, err
	}

	// poisoned events are parked in process; they are already logged and
	// reported to sentry by the handler wrapper
	dlq := gochannel.NewGoChannel(gochannel.Config{Persistent: false}, wmLogger)
	poisonQueue, err := middleware.PoisonQueue(dlq, cfg.EventTopic()+"_dlq")
	if err != nil {
		return nil, err
	}

	router.AddMiddleware(
		poisonQueue,
		middleware.Recoverer,
		middleware.CorrelationID,
		middleware.Retry{
			MaxRetries:          cfg.Router.MaxRetries,
			InitialInterval:     cfg.Router.InitialInterval,
			MaxInterval:         cfg.Router.MaxInterval,
			Multiplier:          cfg.Router.Multiplier,
			MaxElapsedTime:      cfg.Router.MaxElapsedTime,
			RandomizationFactor: 0.5,
			Logger:              wmLogger,
			OnRetryHook: func(retryNum int, delay time.Duration) {
				logger.Infow("retrying message",
					"retry_number", retryNum,
					"max_retries", cfg.Router.MaxRetries,
					"delay", delay,
				)
			},
		}.Middleware,
	)

	return &Router{
		router: router,
		logger: logger,
		sentry: sentry,
		dlq:    dlq,
	}, nil
}

// AddNoPublishHandler registers a consumer. Terminal errors are logged and
// acked instead of being retried.
func (r *Router) AddNoPublishHandler(
	handlerName string,
	topicName string,
	subscriber message.Subscriber,
	handlerFunc func(msg *message.Message) error,
	middlewares ...message.HandlerMiddleware,
) {
	handler := r.router.AddNoPublisherHandler(
		handlerName,
		topicName,
		subscriber,
		func(msg *message.Message) error {
			err := handlerFunc(msg)
			if err == nil {
				return nil
			}

			r.sentry.CaptureException(err)
			r.logger.Errorw("handler failed",
				"handler", handlerName,
				"error", err,
				"correlation_id", middleware.MessageCorrelationID(msg),
				"message_uuid", msg.UUID,
			)
			if !shouldRetry(r.logger, err) {
				return nil
			}
			return err
		},
	)

	for _, m := range middlewares {
		handler.AddMiddleware(m)
	}
}

// Run blocks until ctx is cancelled or Close is called
func (r *Router) Run(ctx context.Context) error {
	r.logger.Info("starting event router")
	return r.router.Run(ctx)
}

// Running is closed once every handler is subscribed
func (r *Router) Running() chan struct{} {
	return r.router.Running()
}

func (r *Router) Close() error {
	r.logger.Info("closing event router")
	if err := r.router.Close(); err != nil {
		return err
	}
	return r.dlq.Close()
}
