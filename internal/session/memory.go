package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	messages  []Message
	expiresAt time.Time
}

// MemoryStore keeps history in process. Entries expire ttl after their last
// write. An expired entry is dropped when it is next read, and Create sweeps
// every expired entry at most once per ttl so abandoned sessions do not
// accumulate.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]*memoryEntry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Create(ctx context.Context) (string, error) {
	id := NewID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.entries[id] = &memoryEntry{expiresAt: s.now().Add(s.ttl)}
	return id, nil
}

func (s *MemoryStore) Append(ctx context.Context, id string, msgs ...Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.live(id)
	if e == nil {
		e = &memoryEntry{}
		s.entries[id] = e
	}
	e.messages = append(e.messages, msgs...)
	e.expiresAt = s.now().Add(s.ttl)
	return nil
}

func (s *MemoryStore) History(ctx context.Context, id string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.live(id)
	if e == nil {
		return []Message{}, nil
	}
	return append([]Message{}, e.messages...), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// live returns the entry for id, evicting it if expired. Caller holds mu.
func (s *MemoryStore) live(id string) *memoryEntry {
	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	if s.ttl > 0 && !s.now().Before(e.expiresAt) {
		delete(s.entries, id)
		return nil
	}
	return e
}

// sweep drops every expired entry. Caller holds mu.
func (s *MemoryStore) sweep() {
	if s.ttl <= 0 {
		return
	}
	now := s.now()
	if now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}
