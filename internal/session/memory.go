package session

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/apaise/internal/safety"
)

// memoryStore is the in-process driver: a mutex-guarded map bounded by
// capacity, with idle-TTL expiry checked lazily on access. Abandoned
// sessions therefore never accumulate past the configured bound.
type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memEntry
	capacity int
	ttl      time.Duration
	now      func() time.Time // overridable in tests
}

type memEntry struct {
	session  Session
	lastSeen time.Time
}

func newMemoryStore(cfg storeConfig) *memoryStore {
	return &memoryStore{
		sessions: make(map[string]*memEntry),
		capacity: cfg.capacity,
		ttl:      cfg.ttl,
		now:      time.Now,
	}
}

func (s *memoryStore) GetOrCreate(ctx context.Context, key string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.sessions[key]; ok {
		if now.Sub(e.lastSeen) <= s.ttl {
			e.lastSeen = now
			out := e.session
			return &out, nil
		}
		delete(s.sessions, key)
	}

	if len(s.sessions) >= s.capacity {
		s.evictOldest()
	}

	e := &memEntry{
		session: Session{
			Key:       key,
			State:     safety.StateNormal,
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		},
		lastSeen: now,
	}
	s.sessions[key] = e
	out := e.session
	return &out, nil
}

func (s *memoryStore) Update(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.sessions[sess.Key]
	if !ok || now.Sub(e.lastSeen) > s.ttl {
		delete(s.sessions, sess.Key)
		return ErrNotFound
	}
	if e.session.Version != sess.Version {
		return ErrVersionConflict
	}

	sess.Version++
	sess.UpdatedAt = now
	e.session = *sess
	e.lastSeen = now
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, key)
	return nil
}

func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	return nil
}

// evictOldest drops the least recently touched entry. Called with the
// lock held.
func (s *memoryStore) evictOldest() {
	var oldestKey string
	var oldest time.Time
	first := true
	for key, e := range s.sessions {
		if first || e.lastSeen.Before(oldest) {
			oldestKey, oldest = key, e.lastSeen
			first = false
		}
	}
	if !first {
		delete(s.sessions, oldestKey)
	}
}
