package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"staybook/internal/app/sessions"
)

const keyPrefix = "staybook:session:"

// CacheObserver counts store hits and misses.
type CacheObserver interface {
	ObserveCache(store, event string)
}

// SessionStore keeps sessions as JSON values that expire after ttl of inactivity.
type SessionStore struct {
	client   redis.UniversalClient
	ttl      time.Duration
	location *time.Location
	observer CacheObserver
}

func NewClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

func NewSessionStore(client redis.UniversalClient, ttl time.Duration, loc *time.Location, observer CacheObserver) *SessionStore {
	if loc == nil {
		loc = time.UTC
	}
	return &SessionStore{client: client, ttl: ttl, location: loc, observer: observer}
}

func (s *SessionStore) Get(ctx context.Context, id string) (*sessions.Session, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		s.observe("miss")
		return nil, sessions.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	s.observe("hit")
	var rec sessions.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return sessions.FromRecord(rec, s.location)
}

func (s *SessionStore) Save(ctx context.Context, session *sessions.Session) error {
	payload, err := json.Marshal(sessions.ToRecord(session))
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}
	s.observe("set")
	if err := s.client.Set(ctx, keyPrefix+session.ID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.observe("del")
	return s.client.Del(ctx, keyPrefix+id).Err()
}

// Ping backs the readiness probe.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) observe(event string) {
	if s.observer != nil {
		s.observer.ObserveCache("redis", event)
	}
}

var _ sessions.Store = (*SessionStore)(nil)
