package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheExpiry(t *testing.T) {
	now := time.Date(2023, time.December, 18, 9, 0, 0, 0, time.UTC)
	c := New[string](nil).WithClock(func() time.Time { return now })

	c.Set("a", "alpha", time.Minute)
	c.Set("b", "beta", 0)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "alpha", v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok, "zero ttl never expires")

	c.Delete("b")
	assert.Equal(t, 0, c.Len())
}

func TestCachePurgeAndClone(t *testing.T) {
	now := time.Date(2023, time.December, 18, 9, 0, 0, 0, time.UTC)
	c := New(func(s []int) []int { return append([]int(nil), s...) }).WithClock(func() time.Time { return now })

	in := []int{1, 2}
	c.Set("x", in, time.Minute)
	in[0] = 99
	out, _ := c.Get("x")
	assert.Equal(t, []int{1, 2}, out)
	out[1] = 42
	again, _ := c.Get("x")
	assert.Equal(t, []int{1, 2}, again)

	c.Set("y", nil, time.Hour)
	now = now.Add(30 * time.Minute)
	assert.Equal(t, 1, c.Purge())
	assert.Equal(t, 1, c.Len())
}

func TestCacheEvictExpired(t *testing.T) {
	now := time.Date(2023, time.December, 18, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		setup     func(c *Cache[string])
		wantEvict bool
		wantValue string
	}{
		{
			name:      "stale entry is removed",
			setup:     func(c *Cache[string]) { c.entries["s"] = entry[string]{value: "old", expiry: now.Add(-time.Minute)} },
			wantEvict: true,
		},
		{
			name:      "entry replaced after the read survives",
			setup:     func(c *Cache[string]) { c.Set("s", "fresh", time.Hour) },
			wantValue: "fresh",
		},
		{
			name:      "entry without ttl survives",
			setup:     func(c *Cache[string]) { c.Set("s", "forever", 0) },
			wantValue: "forever",
		},
		{
			name:  "missing entry is a no-op",
			setup: func(c *Cache[string]) {},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New[string](nil).WithClock(func() time.Time { return now })
			tt.setup(c)
			assert.Equal(t, tt.wantEvict, c.evictExpired("s", now))
			v, ok := c.Get("s")
			assert.Equal(t, tt.wantValue != "", ok)
			assert.Equal(t, tt.wantValue, v)
		})
	}
}

func TestCacheConcurrentGetKeepsFreshSet(t *testing.T) {
	now := time.Date(2023, time.December, 18, 9, 0, 0, 0, time.UTC)
	c := New[string](nil).WithClock(func() time.Time { return now })
	c.entries["s"] = entry[string]{value: "old", expiry: now.Add(-time.Minute)}

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 200; j++ {
				c.Get("s")
			}
		}()
	}
	close(start)
	c.Set("s", "fresh", time.Hour)
	wg.Wait()

	v, ok := c.Get("s")
	assert.True(t, ok)
	assert.Equal(t, "fresh", v)
}
