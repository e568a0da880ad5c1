package audit

import (
	"encoding/json"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/domain/events"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/logger"
	memoryPubSub "github.com/cbo-rewards/loyalty/internal/pubsub/memory"
	"github.com/cbo-rewards/loyalty/internal/pyroscope"
	"github.com/cbo-rewards/loyalty/internal/sentry"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/stretchr/testify/suite"
)

type ConsumerSuite struct {
	suite.Suite
	consumer *Consumer
}

func TestConsumer(t *testing.T) {
	suite.Run(t, new(ConsumerSuite))
}

func (s *ConsumerSuite) SetupTest() {
	cfg := config.GetDefaultConfig()
	log := logger.NewNoopLogger()
	s.consumer = NewConsumer(
		cfg,
		memoryPubSub.NewPubSub(cfg, log),
		log,
		sentry.NewSentryService(cfg, log),
		pyroscope.NewPyroscopeService(cfg, log),
	)
}

func (s *ConsumerSuite) TestHandleEvent() {
	event := events.NewEvent(types.EventPointsEarned, "usr_1", map[string]any{"points": 30})
	payload, err := json.Marshal(event)
	s.Require().NoError(err)

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("request_id", "req_1")
	s.NoError(s.consumer.Handle(msg))
}

func (s *ConsumerSuite) TestMalformedPayload() {
	msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	err := s.consumer.Handle(msg)
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}
