package memory

import (
	"context"
	"log/slog"
	"sync"

	appoutbox "staybook/internal/app/outbox"
)

// Outbox keeps records in memory and logs them on flush. It stands in for the
// durable outbox when no database is configured.
type Outbox struct {
	mu      sync.Mutex
	records []appoutbox.EventRecord
	logger  *slog.Logger
}

func NewOutbox(logger *slog.Logger) *Outbox {
	return &Outbox{logger: logger}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	pending := o.records
	o.records = nil
	o.mu.Unlock()
	if o.logger == nil {
		return nil
	}
	for _, rec := range pending {
		o.logger.DebugContext(ctx, "event recorded", "event", rec.Name, "aggregate", rec.Aggregate, "id", rec.ID)
	}
	return nil
}

// Pending returns the records not yet flushed.
func (o *Outbox) Pending() []appoutbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]appoutbox.EventRecord(nil), o.records...)
}

var _ appoutbox.Outbox = (*Outbox)(nil)
