package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	AggregateType() string
	OccurredAt() time.Time
}

// BaseEvent carries the envelope fields shared by every event. Fields are
// exported so that embedding events serialise them alongside their payload.
type BaseEvent struct {
	OccurredTime time.Time `json:"occurred_at"`
	ID           string    `json:"event_id"`
	Type         string    `json:"event_type"`
	Aggregate    string    `json:"aggregate_id"`
	Kind         string    `json:"aggregate_type"`
}

// NewBaseEvent creates a BaseEvent stamped with a fresh ID and the given time.
func NewBaseEvent(eventType, aggregateID, aggregateType string, at time.Time) BaseEvent {
	if at.IsZero() {
		at = time.Now()
	}
	return BaseEvent{
		ID:           uuid.NewString(),
		Type:         eventType,
		Aggregate:    aggregateID,
		Kind:         aggregateType,
		OccurredTime: at.UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }
func (e BaseEvent) AggregateType() string { return e.Kind }
func (e BaseEvent) OccurredAt() time.Time { return e.OccurredTime }
