// Package publisher fans registry audit events into a Store, either inline
// or through a bounded buffer drained by a background goroutine.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	audit "smp/pkg/platform/audit"
)

// ErrBufferFull is returned by Emit in async mode when the buffer is full.
var ErrBufferFull = errors.New("audit buffer full")

// Lister is implemented by stores that can read events back.
type Lister interface {
	ListByParticipant(ctx context.Context, participantID string) ([]audit.Event, error)
}

// Publisher writes audit events to a Store. In sync mode Emit returns the
// store's error; in async mode Emit only enqueues and Close drains.
type Publisher struct {
	store  audit.Store
	logger *slog.Logger
	now    func() time.Time

	bufferSize int
	events     chan audit.Event
	wg         sync.WaitGroup
	closeOnce  sync.Once
	mu         sync.RWMutex
	closed     bool
}

var _ audit.Emitter = (*Publisher)(nil)

type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode with a buffer of n
// events.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.bufferSize = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 {
		p.events = make(chan audit.Event, p.bufferSize)
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit records event. Missing category and timestamp are filled in.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	event = event.Normalize(p.now())

	if p.events == nil {
		return p.store.Append(ctx, event)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return errors.New("audit publisher closed")
	}
	select {
	case p.events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"action", event.Action,
			"participant_id", event.ParticipantID,
		)
		return ErrBufferFull
	}
}

// List reads events back when the store supports it.
func (p *Publisher) List(ctx context.Context, participantID string) ([]audit.Event, error) {
	lister, ok := p.store.(Lister)
	if !ok {
		return nil, errors.New("audit store does not support listing")
	}
	return lister.ListByParticipant(ctx, participantID)
}

// Close stops accepting events and, in async mode, waits until the buffer is
// drained.
func (p *Publisher) Close() error {
	p.closeOnce.Do(func() {
		if p.events == nil {
			return
		}
		p.mu.Lock()
		p.closed = true
		close(p.events)
		p.mu.Unlock()
		p.wg.Wait()
	})
	return nil
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.events {
		// The emitting request may be long gone.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := p.store.Append(ctx, event); err != nil {
			p.logger.Error("failed to persist audit event",
				"action", event.Action,
				"participant_id", event.ParticipantID,
				"error", err,
			)
		}
		cancel()
	}
}
