// Package memory keeps the audit trail in process. It is the default sink
// and the one the service tests read back from.
package memory

import (
	"context"
	"sync"

	audit "smp/pkg/platform/audit"
)

// Option configures an InMemoryStore.
type Option func(*InMemoryStore)

// WithRetain keeps only the newest n events. n <= 0 keeps everything.
func WithRetain(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.retain = n
		}
	}
}

// InMemoryStore is an append-only event list, oldest first.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
	retain int
}

var _ audit.Store = (*InMemoryStore)(nil)

func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if s.retain > 0 && len(s.events) > s.retain {
		// Copy down so the dropped prefix can be collected.
		s.events = append(s.events[:0:0], s.events[len(s.events)-s.retain:]...)
	}
	return nil
}

// ListByParticipant returns the retained events of one participant in append
// order.
func (s *InMemoryStore) ListByParticipant(_ context.Context, participantID string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, e := range s.events {
		if e.ParticipantID == participantID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListRecent returns up to limit events, newest first, matching the SQL sink.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit > len(s.events) || limit < 0 {
		limit = len(s.events)
	}
	out := make([]audit.Event, 0, limit)
	for i := len(s.events) - 1; len(out) < limit; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}
