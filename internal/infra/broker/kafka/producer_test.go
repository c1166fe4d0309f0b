package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducerPublish(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if string(val) != `{"id":"ev-1"}` {
			return errors.New("unexpected payload " + string(val))
		}
		return nil
	})
	p := NewProducerWith(sp)

	err := p.Publish(context.Background(), "selection.events.v1", "s-1", []byte(`{"id":"ev-1"}`), map[string]string{"content-type": "application/cloudevents+json"})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestProducerPublishFailure(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	p := NewProducerWith(sp)

	err := p.Publish(context.Background(), "selection.events.v1", "s-1", []byte(`{}`), nil)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestProducerHonoursCancelledContext(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	p := NewProducerWith(sp)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Publish(ctx, "t", "k", nil, nil), context.Canceled)
	require.NoError(t, p.Close())
}

func TestRecordHeadersSorted(t *testing.T) {
	hs := recordHeaders(map[string]string{"b": "2", "a": "1"})
	require.Len(t, hs, 2)
	assert.Equal(t, "a", string(hs[0].Key))
	assert.Equal(t, "2", string(hs[1].Value))
	assert.Empty(t, recordHeaders(nil))
}
