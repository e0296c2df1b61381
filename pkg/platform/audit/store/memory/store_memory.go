// Package memory keeps the most recent audit events in process. It backs the
// audit trail when no database is configured, so it holds a fixed number of
// events and overwrites the oldest.
package memory

import (
	"context"
	"sync"

	audit "consentflow/pkg/platform/audit"
)

// DefaultCapacity is the number of events retained when no capacity is set.
const DefaultCapacity = 1024

type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
	next   int
	full   bool
}

// Option configures an InMemoryStore.
type Option func(*InMemoryStore)

// WithCapacity sets how many events are retained.
func WithCapacity(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.events = make([]audit.Event, n)
		}
	}
}

func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{events: make([]audit.Event, DefaultCapacity)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.events)
	s.next = 0
	s.full = false
}

// Append records event, evicting the oldest once the store is full.
func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[s.next] = event
	s.next = (s.next + 1) % len(s.events)
	if s.next == 0 {
		s.full = true
	}
	return nil
}

// Len reports how many events are retained.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.full {
		return len(s.events)
	}
	return s.next
}

// ListByClient returns the retained events for one OAuth client, oldest first.
func (s *InMemoryStore) ListByClient(_ context.Context, clientID string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []audit.Event{}
	for _, e := range s.ordered() {
		if e.ClientID == clientID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListRecent returns the most recent limit events across all clients, oldest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.ordered()
	start := max(len(all)-limit, 0)
	return append([]audit.Event{}, all[start:]...), nil
}

// ordered returns the retained events oldest first. Callers hold the lock.
func (s *InMemoryStore) ordered() []audit.Event {
	if !s.full {
		return s.events[:s.next]
	}
	out := make([]audit.Event, 0, len(s.events))
	out = append(out, s.events[s.next:]...)
	return append(out, s.events[:s.next]...)
}
