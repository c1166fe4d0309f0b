// Package outbox turns recorded domain events into broker-ready records.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"staybook/internal/domain/shared/events"
)

// HeaderEventName carries the event name alongside the payload for consumers that route
// on headers only.
const HeaderEventName = "event-name"

type EventRecord struct {
	ID         string
	Name       string
	Payload    []byte
	OccurredAt time.Time
	Aggregate  string
	Headers    map[string]string
}

// Outbox collects records during a command; Flush runs once the command succeeded.
type Outbox interface {
	Add(ctx context.Context, record EventRecord) error
	Flush(ctx context.Context) error
}

type EventEncoder interface {
	Encode(ctx context.Context, ev events.DomainEvent) (EventRecord, error)
}

// HeaderSource extracts correlation headers, such as a request id, from ctx.
type HeaderSource func(ctx context.Context) map[string]string

type JSONEventEncoder struct {
	IDGenerator func() string
	Headers     HeaderSource
}

func (e JSONEventEncoder) Encode(ctx context.Context, ev events.DomainEvent) (EventRecord, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return EventRecord{}, fmt.Errorf("encode %s: %w", ev.EventName(), err)
	}
	idGen := e.IDGenerator
	if idGen == nil {
		idGen = uuid.NewString
	}
	headers := map[string]string{HeaderEventName: ev.EventName()}
	if e.Headers != nil {
		maps.Copy(headers, e.Headers(ctx))
	}
	return EventRecord{
		ID:         idGen(),
		Name:       ev.EventName(),
		Payload:    payload,
		OccurredAt: ev.OccurredAt().UTC(),
		Aggregate:  ev.AggregateID(),
		Headers:    headers,
	}, nil
}

// RecordDomainEvents encodes evs in order and adds them to box. A nil box drops them.
// Encoding stops at the first failure so a partial batch is never added.
func RecordDomainEvents(ctx context.Context, box Outbox, encoder EventEncoder, evs []events.DomainEvent) error {
	if box == nil || len(evs) == 0 {
		return nil
	}
	if encoder == nil {
		encoder = JSONEventEncoder{}
	}
	records := make([]EventRecord, 0, len(evs))
	for _, ev := range evs {
		rec, err := encoder.Encode(ctx, ev)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}
	for _, rec := range records {
		if err := box.Add(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
