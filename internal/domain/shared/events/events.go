// Package events holds the facts aggregates record for the outbox.
package events

import (
	"slices"
	"time"
)

type DomainEvent interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

// EventRecorder buffers events on an aggregate until the command that changed it is
// persisted. The zero value is ready to use.
type EventRecorder struct {
	pending []DomainEvent
}

// Record ignores nil events.
func (r *EventRecorder) Record(event DomainEvent) {
	if event != nil {
		r.pending = append(r.pending, event)
	}
}

func (r *EventRecorder) PendingEvents() []DomainEvent {
	return slices.Clone(r.pending)
}

// Drain hands over the pending events and empties the buffer.
func (r *EventRecorder) Drain() []DomainEvent {
	out := r.pending
	r.pending = nil
	return out
}
