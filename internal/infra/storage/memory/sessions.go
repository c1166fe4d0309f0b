package memory

import (
	"context"
	"time"

	"staybook/internal/app/sessions"
	"staybook/internal/infra/cache"
)

// CacheObserver counts store hits and misses.
type CacheObserver interface {
	ObserveCache(store, event string)
}

// SessionStore keeps picker sessions in a TTL cache.
type SessionStore struct {
	items    *cache.Cache[*sessions.Session]
	ttl      time.Duration
	observer CacheObserver
}

func NewSessionStore(ttl time.Duration, observer CacheObserver) *SessionStore {
	return &SessionStore{
		items:    cache.New((*sessions.Session).Clone),
		ttl:      ttl,
		observer: observer,
	}
}

func (s *SessionStore) Get(ctx context.Context, id string) (*sessions.Session, error) {
	session, ok := s.items.Get(id)
	if !ok {
		s.observe("miss")
		return nil, sessions.ErrSessionNotFound
	}
	s.observe("hit")
	return session, nil
}

// Save stores a copy and restarts the session TTL.
func (s *SessionStore) Save(ctx context.Context, session *sessions.Session) error {
	s.items.Set(session.ID, session, s.ttl)
	s.observe("set")
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.items.Delete(id)
	s.observe("del")
	return nil
}

// Janitor purges expired sessions every interval until ctx ends.
func (s *SessionStore) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.items.Purge()
		}
	}
}

func (s *SessionStore) observe(event string) {
	if s.observer != nil {
		s.observer.ObserveCache("memory", event)
	}
}

var _ sessions.Store = (*SessionStore)(nil)
