package types

import (
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
)

// PubSubType selects the transport loyalty events travel on
type PubSubType string

const (
	// MemoryPubSub keeps events inside the process; used locally and in tests
	MemoryPubSub PubSubType = "memory"
	KafkaPubSub  PubSubType = "kafka"
)

func (p PubSubType) Validate() error {
	switch p {
	case MemoryPubSub, KafkaPubSub:
		return nil
	}
	return ierr.NewErrorf("unknown pubsub type %q", p).
		WithHint("event.pubsub must be memory or kafka").
		Mark(ierr.ErrValidation)
}
