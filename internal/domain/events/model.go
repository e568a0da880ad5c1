package events

import (
	"time"

	"github.com/cbo-rewards/loyalty/internal/types"
)

// Event is a loyalty domain event published after a ledger change commits
type Event struct {
	ID         string         `json:"id"`
	EventName  string         `json:"event_name"`
	CustomerID string         `json:"customer_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Properties map[string]any `json:"properties"`
}

func NewEvent(name, customerID string, properties map[string]any) *Event {
	if properties == nil {
		properties = make(map[string]any)
	}
	return &Event{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EVENT),
		EventName:  name,
		CustomerID: customerID,
		Timestamp:  time.Now().UTC(),
		Properties: properties,
	}
}
