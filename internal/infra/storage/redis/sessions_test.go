package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/app/sessions"
	"staybook/internal/domain/availability"
	"staybook/internal/domain/selection"
	"staybook/internal/domain/shared/daterange"
)

type cacheEvents []string

func (c *cacheEvents) ObserveCache(_, event string) { *c = append(*c, event) }

func TestSessionStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })

	tokyo := time.FixedZone("JST", 9*60*60)
	day := func(n int) time.Time { return time.Date(2023, time.December, n, 0, 0, 0, 0, tokyo) }
	events := &cacheEvents{}
	store := NewSessionStore(client, 30*time.Minute, tokyo, events)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	_, err := store.Get(ctx, "s-1")
	assert.ErrorIs(t, err, sessions.ErrSessionNotFound)

	s := sessions.New("s-1", "cottage", []availability.DateInfo{
		{Date: day(18), Status: availability.Available},
		{Date: day(19), Status: availability.Limited},
		{Date: day(20), Status: availability.Unavailable},
	}, time.Date(2023, time.December, 17, 3, 0, 0, 0, time.UTC))
	require.NoError(t, s.Pick(day(18), s.CreatedAt))
	require.NoError(t, s.Pick(day(19), s.CreatedAt))
	require.NoError(t, store.Save(ctx, s))

	assert.True(t, mr.Exists(keyPrefix+"s-1"))
	assert.Equal(t, 30*time.Minute, mr.TTL(keyPrefix+"s-1"))

	got, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, s.Window, got.Window)
	assert.Equal(t, selection.Complete{Range: daterange.DateRange{From: day(18), To: day(19)}}, got.State)
	assert.True(t, s.CreatedAt.Equal(got.CreatedAt))

	mr.FastForward(31 * time.Minute)
	_, err = store.Get(ctx, "s-1")
	assert.ErrorIs(t, err, sessions.ErrSessionNotFound, "sessions expire")

	require.NoError(t, store.Save(ctx, s))
	require.NoError(t, store.Delete(ctx, "s-1"))
	assert.False(t, mr.Exists(keyPrefix+"s-1"))
	assert.Equal(t, []string{"miss", "set", "hit", "miss", "set", "del"}, []string(*events))
}

func TestSessionStoreCorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, mr.Set(keyPrefix+"broken", "{not json"))

	_, err := NewSessionStore(client, time.Minute, nil, nil).Get(context.Background(), "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, sessions.ErrSessionNotFound)
}
