package testutil

import (
	"context"
	"sync"

	"github.com/cbo-rewards/loyalty/internal/domain/events"
)

// InMemoryPublisher records published events, used by tests
type InMemoryPublisher struct {
	mu     sync.Mutex
	events []*events.Event
}

func NewInMemoryPublisher() *InMemoryPublisher {
	return &InMemoryPublisher{}
}

func (p *InMemoryPublisher) Publish(_ context.Context, event *events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns the published events in order, optionally only those named
func (p *InMemoryPublisher) Events(names ...string) []*events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(names) == 0 {
		return append([]*events.Event(nil), p.events...)
	}
	var out []*events.Event
	for _, e := range p.events {
		for _, n := range names {
			if e.EventName == n {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

func (p *InMemoryPublisher) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}
