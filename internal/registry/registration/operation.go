package registration

import (
	"context"
	"sync"

	"smp/internal/registry/ports"
	id "smp/pkg/domain"
)

// State is the position of one registration run.
type State int

const (
	StateIdle State = iota
	StateLocatorPending
	StateLocatorConfirmed
	StateLocalPending
	StateCommitted
	StateFailed
	StateCompensating
	StateCompensatedOk
	StateCompensatedFailed
)

var stateNames = map[State]string{
	StateIdle:              "idle",
	StateLocatorPending:    "locator_pending",
	StateLocatorConfirmed:  "locator_confirmed",
	StateLocalPending:      "local_pending",
	StateCommitted:         "committed",
	StateFailed:            "failed",
	StateCompensating:      "compensating",
	StateCompensatedOk:     "compensated_ok",
	StateCompensatedFailed: "compensated_failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	switch s {
	case StateCommitted, StateFailed, StateCompensatedOk, StateCompensatedFailed:
		return true
	}
	return false
}

// Kind is the write a run performs.
type Kind string

const (
	KindCreate Kind = "create"
	KindDelete Kind = "delete"
)

// Outcome is the overall result of the request a run belongs to.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
)

func (o Outcome) String() string {
	if o == OutcomeSuccess {
		return "success"
	}
	return "failure"
}

// PendingOperation is the handle a coordinator run returns. Everything it
// needs to compensate is captured when the run starts, so Resolve works
// after the originating request context is gone.
type PendingOperation struct {
	id          id.OperationID
	kind        Kind
	pid         id.ParticipantID
	coordinator *Coordinator
	groups      ports.ServiceGroupManager

	mu                sync.Mutex
	state             State
	locatorRegistered bool
	resolved          bool
}

func (op *PendingOperation) ID() id.OperationID              { return op.id }
func (op *PendingOperation) Kind() Kind                      { return op.kind }
func (op *PendingOperation) ParticipantID() id.ParticipantID { return op.pid }

func (op *PendingOperation) State() State {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.state
}

// Resolve settles an operation left in StateLocalPending: success commits
// it, failure compensates it. Only the first call acts; later calls and calls
// on already terminal operations return nil.
func (op *PendingOperation) Resolve(ctx context.Context, outcome Outcome) error {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.resolved {
		return nil
	}
	op.resolved = true
	if op.state != StateLocalPending {
		return nil
	}
	if outcome == OutcomeSuccess {
		op.transition(ctx, StateCommitted)
		return nil
	}
	return op.coordinator.rollbackCreate(ctx, op)
}

// transition moves to next and records terminal states. Callers hold op.mu
// or own op exclusively.
func (op *PendingOperation) transition(ctx context.Context, next State) {
	op.state = next
	c := op.coordinator
	c.logger.DebugContext(ctx, "registration state changed",
		"operation_id", op.id.String(),
		"kind", string(op.kind),
		"participant_id", op.pid.URI(),
		"state", next.String(),
	)
	if next.Terminal() {
		c.metrics.IncRegistration(string(op.kind), next.String())
	}
}
