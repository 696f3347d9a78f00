// Package audit defines the registry's audit trail: the event shape, the
// Store sinks write to, and the Emitter the registry logic depends on.
package audit

import "context"

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Emitter is what registry components depend on to record an event.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}
