package idempotency

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	rec       Record
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryStore keeps keys in process memory. Suitable for a single replica.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{ttl: normalizeTTL(ttl), now: time.Now, entries: map[string]memoryEntry{}}
}

func (s *memoryStore) Begin(_ context.Context, key string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if e, ok := s.entries[key]; ok && now.Before(e.expiresAt) {
		if e.rec.State == StateCompleted {
			rec := e.rec
			return &rec, nil
		}
		return nil, ErrInFlight
	}
	s.entries[key] = memoryEntry{
		rec:       Record{State: StatePending, UpdatedAt: now},
		expiresAt: now.Add(s.ttl),
	}
	return nil, nil
}

func (s *memoryStore) Complete(_ context.Context, key string, result []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.entries[key] = memoryEntry{
		rec:       Record{State: StateCompleted, Result: append([]byte(nil), result...), UpdatedAt: now},
		expiresAt: now.Add(s.ttl),
	}
	return nil
}

func (s *memoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
