package events

import "sync"

// EventCollector buffers domain events raised during a unit of work until
// they are handed to a publisher. Safe for concurrent use.
type EventCollector struct {
	mu     sync.Mutex
	events []DomainEvent
}

// Record appends a domain event to the collector.
func (c *EventCollector) Record(event DomainEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

// Events returns a copy of the collected events without clearing them.
func (c *EventCollector) Events() []DomainEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]DomainEvent, len(c.events))
	copy(out, c.events)
	return out
}

// ClearEvents returns the collected domain events and clears the internal slice.
func (c *EventCollector) ClearEvents() []DomainEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	collected := c.events
	c.events = nil
	return collected
}
