package memory

import (
	"context"
	"time"

	"staybook/internal/app/middleware"
	"staybook/internal/infra/cache"
)

// IdempotencyStore remembers command results for ttl.
type IdempotencyStore struct {
	items *cache.Cache[middleware.IdempotencyRecord]
	ttl   time.Duration
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{
		items: cache.New(func(rec middleware.IdempotencyRecord) middleware.IdempotencyRecord {
			rec.Payload = append([]byte(nil), rec.Payload...)
			return rec
		}),
		ttl: ttl,
	}
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (middleware.IdempotencyRecord, bool, error) {
	rec, ok := s.items.Get(key)
	return rec, ok, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, rec middleware.IdempotencyRecord) error {
	s.items.Set(rec.Key, rec, s.ttl)
	return nil
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)
