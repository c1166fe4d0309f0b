package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failure struct {
	id   string
	next time.Time
	msg  string
}

type fakeQueue struct {
	pending []*EventDocument
	sent    []string
	failed  []failure
}

func (q *fakeQueue) Claim(context.Context, string) (*EventDocument, error) {
	if len(q.pending) == 0 {
		return nil, nil
	}
	doc := q.pending[0]
	q.pending = q.pending[1:]
	return doc, nil
}

func (q *fakeQueue) MarkSent(_ context.Context, id string) error {
	q.sent = append(q.sent, id)
	return nil
}

func (q *fakeQueue) MarkFailed(_ context.Context, id string, next time.Time, msg string) error {
	q.failed = append(q.failed, failure{id: id, next: next, msg: msg})
	return nil
}

type published struct {
	topic, key string
	payload    []byte
	headers    map[string]string
}

type fakeProducer struct {
	msgs []published
	err  error
}

func (p *fakeProducer) Publish(_ context.Context, topic, key string, payload []byte, headers map[string]string) error {
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, published{topic: topic, key: key, payload: payload, headers: headers})
	return nil
}

type publishCounter struct{ ok, failed int }

func (c *publishCounter) ObservePublish(err error) {
	if err != nil {
		c.failed++
		return
	}
	c.ok++
}

var fixedNow = time.Date(2023, time.December, 17, 10, 0, 0, 0, time.UTC)

func newWorker(q Queue, p Producer, obs PublishObserver) *Worker {
	return &Worker{
		Queue:       q,
		Producer:    p,
		TopicPrefix: "dev.",
		ID:          "worker-1",
		Backoff:     []time.Duration{time.Second, time.Minute},
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Observer:    obs,
		Now:         func() time.Time { return fixedNow },
	}
}

func TestWorkerDrainPublishesCloudEvents(t *testing.T) {
	q := &fakeQueue{pending: []*EventDocument{
		{ID: "ev-1", Name: "selection.completed", Aggregate: "s-1", Payload: []byte(`{"Nights":3}`), OccurredAt: fixedNow, Headers: map[string]string{"traceparent": "00-abc"}},
		{ID: "ev-2", Name: "availability.window_generated", Aggregate: "s-1", Payload: []byte(`{}`), OccurredAt: fixedNow},
	}}
	p := &fakeProducer{}
	obs := &publishCounter{}

	require.NoError(t, newWorker(q, p, obs).drain(context.Background()))

	assert.Equal(t, []string{"ev-1", "ev-2"}, q.sent)
	require.Len(t, p.msgs, 2)
	assert.Equal(t, "dev.selection.events.v1", p.msgs[0].topic)
	assert.Equal(t, "dev.availability.events.v1", p.msgs[1].topic)
	assert.Equal(t, "s-1", p.msgs[0].key)
	assert.Equal(t, "application/cloudevents+json", p.msgs[0].headers["content-type"])
	assert.Equal(t, "00-abc", p.msgs[0].headers["traceparent"])
	assert.Equal(t, 2, obs.ok)

	var evt map[string]any
	require.NoError(t, json.Unmarshal(p.msgs[0].payload, &evt))
	assert.Equal(t, "selection.completed.v1", evt["type"])
	assert.Equal(t, "app://staybook", evt["source"])
	assert.Equal(t, "ev-1", evt["id"])
	assert.Equal(t, "00-abc", evt["traceparent"])
	assert.Equal(t, map[string]any{"Nights": float64(3)}, evt["data"])
}

func TestWorkerMarksFailures(t *testing.T) {
	q := &fakeQueue{pending: []*EventDocument{
		{ID: "ev-1", Name: "selection.cleared", Payload: []byte(`{}`), Attempts: 0},
		{ID: "ev-2", Name: "selection.cleared", Payload: []byte(`{}`), Attempts: 5},
	}}
	obs := &publishCounter{}
	w := newWorker(q, &fakeProducer{err: errors.New("broker down")}, obs)

	require.NoError(t, w.drain(context.Background()))

	assert.Empty(t, q.sent)
	require.Len(t, q.failed, 2)
	assert.Equal(t, failure{id: "ev-1", next: fixedNow.Add(time.Second), msg: "broker down"}, q.failed[0])
	assert.Equal(t, fixedNow.Add(time.Minute), q.failed[1].next, "attempts beyond the schedule reuse the last backoff")
	assert.Equal(t, 2, obs.failed)
}

func TestWorkerRejectsBadPayload(t *testing.T) {
	q := &fakeQueue{pending: []*EventDocument{{ID: "ev-1", Name: "selection.cleared", Payload: []byte(`not json`)}}}
	p := &fakeProducer{}

	require.NoError(t, newWorker(q, p, nil).drain(context.Background()))

	assert.Empty(t, p.msgs)
	require.Len(t, q.failed, 1)
}

func TestWorkerDefaults(t *testing.T) {
	w := &Worker{Now: func() time.Time { return fixedNow }}
	assert.Equal(t, "selection.events.v1", w.topicFor("selection.completed"))
	assert.Equal(t, "plain.events.v1", w.topicFor("plain"))
	assert.Equal(t, 500*time.Millisecond, w.interval())
	assert.Equal(t, fixedNow.Add(5*time.Second), w.nextRetry(0))
	assert.ErrorIs(t, w.Run(context.Background()), ErrWorkerNotConfigured)
}
