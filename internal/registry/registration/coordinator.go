// Package registration keeps the local store and the network locator in step
// when a participant is created or deleted. Create announces at the locator
// first and deletes locally first, so on failure the locator never points at
// a registry that does not serve the participant.
package registration

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"smp/internal/registry/locator"
	"smp/internal/registry/metrics"
	"smp/internal/registry/models"
	"smp/internal/registry/ports"
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
	audit "smp/pkg/platform/audit"
	"smp/pkg/requestcontext"
)

const defaultCompensationTimeout = 30 * time.Second

// ManagerSource hands out the managers of the active backend.
type ManagerSource interface {
	ServiceGroupManager() (ports.ServiceGroupManager, error)
	SettingsManager() (ports.SettingsManager, error)
}

// Coordinator runs create and delete of service groups against the locator
// and the active backend. It never retries; a failed run is reported and the
// caller decides what to do.
type Coordinator struct {
	managers            ManagerSource
	locator             locator.Client
	locatorEnabled      bool
	compensationTimeout time.Duration
	logger              *slog.Logger
	metrics             *metrics.Metrics
	auditor             audit.Emitter
	tracer              trace.Tracer
}

type Option func(*Coordinator)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

func WithAuditEmitter(e audit.Emitter) Option {
	return func(c *Coordinator) {
		c.auditor = e
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(c *Coordinator) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithLocatorEnabled is the configuration switch for locator integration.
// The stored settings can additionally disable it at runtime.
func WithLocatorEnabled(enabled bool) Option {
	return func(c *Coordinator) {
		c.locatorEnabled = enabled
	}
}

// WithCompensationTimeout bounds compensating calls, which run detached from
// the request context.
func WithCompensationTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.compensationTimeout = d
		}
	}
}

func New(managers ManagerSource, client locator.Client, opts ...Option) *Coordinator {
	c := &Coordinator{
		managers:            managers,
		locator:             client,
		locatorEnabled:      true,
		compensationTimeout: defaultCompensationTimeout,
		logger:              slog.Default(),
		tracer:              otel.Tracer("smp/registration"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.locator == nil {
		c.locator = locator.Disabled{}
	}
	return c
}

// CreateServiceGroup registers group at the locator and then stores it. The
// returned operation is never nil. On success it is left in
// StateLocalPending and must be resolved once the request outcome is known.
//
// A locator failure aborts before any local change. A local failure after the
// locator accepted triggers one compensating deregistration; if that fails as
// well the error is an *InconsistentStateError.
//
// The AlreadyExists pre-check and the store write are separate steps, so
// callers must serialize creates of the same participant. Two concurrent
// creates can both pass the check, and the loser's compensation would then
// deregister the winner's locator entry.
func (c *Coordinator) CreateServiceGroup(ctx context.Context, group *models.ServiceGroup) (*PendingOperation, error) {
	op := c.newOperation(KindCreate, group.ParticipantID)
	ctx, span := c.startSpan(ctx, op)
	defer span.End()

	err := c.create(ctx, op, group)
	finishSpan(span, op, err)
	return op, err
}

func (c *Coordinator) create(ctx context.Context, op *PendingOperation, group *models.ServiceGroup) error {
	groups, err := c.managers.ServiceGroupManager()
	if err != nil {
		op.transition(ctx, StateFailed)
		return err
	}
	op.groups = groups

	// A compensating deregistration would remove the locator entry of the
	// group that is already there.
	exists, err := groups.Contains(ctx, op.pid)
	if err != nil {
		op.transition(ctx, StateFailed)
		return err
	}
	if exists {
		op.transition(ctx, StateFailed)
		return dErrors.Newf(dErrors.CodeAlreadyExists, "service group %s already exists", op.pid)
	}

	useLocator, err := c.useLocator(ctx)
	if err != nil {
		op.transition(ctx, StateFailed)
		return err
	}

	if useLocator {
		op.transition(ctx, StateLocatorPending)
		if err := c.locator.RegisterParticipant(ctx, op.pid); err != nil {
			op.transition(ctx, StateFailed)
			return asLocatorError(err, "register participant at locator")
		}
		op.locatorRegistered = true
	}
	op.transition(ctx, StateLocatorConfirmed)

	op.transition(ctx, StateLocalPending)
	if localErr := groups.Create(ctx, group); localErr != nil {
		if !op.locatorRegistered {
			op.transition(ctx, StateFailed)
			return localErr
		}
		return c.compensateRegistration(ctx, op, localErr)
	}

	c.emit(ctx, op, audit.EventServiceGroupCreated, "")
	c.logger.InfoContext(ctx, "service group created",
		"operation_id", op.id.String(),
		"participant_id", op.pid.URI(),
		"owner_id", group.OwnerID.String(),
		"locator", op.locatorRegistered,
	)
	return nil
}

// compensateRegistration undoes the locator registration after the local
// create failed. The caller sees localErr unless compensation fails too.
func (c *Coordinator) compensateRegistration(ctx context.Context, op *PendingOperation, localErr error) error {
	op.transition(ctx, StateCompensating)
	cctx, cancel := c.detached(ctx)
	defer cancel()

	if err := c.locator.DeregisterParticipant(cctx, op.pid); err != nil {
		c.metrics.IncCompensation(false)
		op.transition(ctx, StateCompensatedFailed)
		return c.inconsistent(ctx, op,
			"locator lists the participant, local store does not have it",
			localErr, asLocatorError(err, "compensating deregistration failed"))
	}

	c.metrics.IncCompensation(true)
	op.transition(ctx, StateCompensatedOk)
	c.emit(ctx, op, audit.EventRegistrationCompensated, localErr.Error())
	c.logger.WarnContext(ctx, "service group create failed, locator registration compensated",
		"operation_id", op.id.String(),
		"participant_id", op.pid.URI(),
		"error", localErr,
	)
	return localErr
}

// rollbackCreate runs when a committed-locally create belongs to a request
// that failed. It removes the group and then the locator entry, the same
// order a delete uses. Called with op.mu held.
func (c *Coordinator) rollbackCreate(ctx context.Context, op *PendingOperation) error {
	op.transition(ctx, StateCompensating)
	cctx, cancel := c.detached(ctx)
	defer cancel()

	if _, err := op.groups.Delete(cctx, op.pid); err != nil {
		// Both sides still list the participant, so they agree.
		c.metrics.IncCompensation(false)
		op.transition(ctx, StateCompensatedFailed)
		c.logger.ErrorContext(ctx, "could not roll back service group after failed request",
			"operation_id", op.id.String(),
			"participant_id", op.pid.URI(),
			"error", err,
		)
		return err
	}
	if op.locatorRegistered {
		if err := c.locator.DeregisterParticipant(cctx, op.pid); err != nil {
			c.metrics.IncCompensation(false)
			op.transition(ctx, StateCompensatedFailed)
			return c.inconsistent(ctx, op,
				"locator lists the participant, local store does not have it",
				asLocatorError(err, "compensating deregistration failed"))
		}
	}

	c.metrics.IncCompensation(true)
	op.transition(ctx, StateCompensatedOk)
	c.emit(ctx, op, audit.EventRegistrationCompensated, "request failed after create")
	c.logger.WarnContext(ctx, "request failed after service group create, rolled back",
		"operation_id", op.id.String(),
		"participant_id", op.pid.URI(),
	)
	return nil
}

// DeleteServiceGroup deletes the group locally, cascading to its children,
// and then deregisters the participant at the locator. The returned operation
// is never nil and always terminal, so resolving it is a no-op.
//
// Deleting an unknown group fails with CodeNotFound and leaves the locator
// alone. If the locator call fails after the local delete the error is an
// *InconsistentStateError.
func (c *Coordinator) DeleteServiceGroup(ctx context.Context, pid id.ParticipantID) (*PendingOperation, error) {
	op := c.newOperation(KindDelete, pid)
	ctx, span := c.startSpan(ctx, op)
	defer span.End()

	err := c.delete(ctx, op)
	finishSpan(span, op, err)
	return op, err
}

func (c *Coordinator) delete(ctx context.Context, op *PendingOperation) error {
	groups, err := c.managers.ServiceGroupManager()
	if err != nil {
		op.transition(ctx, StateFailed)
		return err
	}
	op.groups = groups

	useLocator, err := c.useLocator(ctx)
	if err != nil {
		op.transition(ctx, StateFailed)
		return err
	}

	op.transition(ctx, StateLocalPending)
	change, err := groups.Delete(ctx, op.pid)
	if err != nil {
		op.transition(ctx, StateFailed)
		return err
	}
	if !change.IsChanged() {
		op.transition(ctx, StateFailed)
		return dErrors.Newf(dErrors.CodeNotFound, "service group %s not found", op.pid)
	}
	c.emit(ctx, op, audit.EventServiceGroupDeleted, "")

	if useLocator {
		op.transition(ctx, StateLocatorPending)
		// The local delete is done; finish the locator step even if the
		// caller has gone away.
		lctx, cancel := c.detached(ctx)
		defer cancel()
		if err := c.locator.DeregisterParticipant(lctx, op.pid); err != nil {
			op.transition(ctx, StateFailed)
			return c.inconsistent(ctx, op,
				"local store deleted the participant, locator still lists this registry",
				asLocatorError(err, "deregister participant at locator"))
		}
	}
	op.transition(ctx, StateLocatorConfirmed)
	op.transition(ctx, StateCommitted)

	c.logger.InfoContext(ctx, "service group deleted",
		"operation_id", op.id.String(),
		"participant_id", op.pid.URI(),
		"locator", useLocator,
	)
	return nil
}

func (c *Coordinator) newOperation(kind Kind, pid id.ParticipantID) *PendingOperation {
	return &PendingOperation{
		id:          id.NewOperationID(),
		kind:        kind,
		pid:         pid,
		coordinator: c,
		state:       StateIdle,
	}
}

// useLocator combines the configuration switch with the stored settings.
func (c *Coordinator) useLocator(ctx context.Context) (bool, error) {
	if !c.locatorEnabled {
		return false, nil
	}
	settingsManager, err := c.managers.SettingsManager()
	if err != nil {
		return false, err
	}
	settings, err := settingsManager.Get(ctx)
	if err != nil {
		return false, err
	}
	return settings.LocatorEnabled, nil
}

// detached returns a context that survives cancellation of ctx but keeps its
// values, bounded by the compensation timeout.
func (c *Coordinator) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), c.compensationTimeout)
}

func (c *Coordinator) inconsistent(ctx context.Context, op *PendingOperation, detail string, errs ...error) error {
	err := &InconsistentStateError{
		Kind:          op.kind,
		ParticipantID: op.pid,
		Detail:        detail,
		Errs:          errs,
	}
	c.metrics.IncInconsistentState(string(op.kind))
	c.logger.ErrorContext(ctx, "registry and locator are inconsistent",
		"alert", true,
		"operation_id", op.id.String(),
		"kind", string(op.kind),
		"participant_id", op.pid.URI(),
		"detail", detail,
		"error", err,
	)
	c.emitEvent(ctx, audit.Event{
		Action:        string(audit.EventInconsistentState),
		ParticipantID: op.pid.URI(),
		OperationID:   op.id.String(),
		Reason:        err.Error(),
		Severity:      audit.SeverityCritical,
	})
	return err
}

func (c *Coordinator) emit(ctx context.Context, op *PendingOperation, action audit.AuditEvent, reason string) {
	c.emitEvent(ctx, audit.Event{
		Action:        string(action),
		ParticipantID: op.pid.URI(),
		OperationID:   op.id.String(),
		Reason:        reason,
	})
}

// emitEvent records an audit event. Audit failures are logged and do not fail
// the registration.
func (c *Coordinator) emitEvent(ctx context.Context, event audit.Event) {
	if c.auditor == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	if err := c.auditor.Emit(ctx, event); err != nil {
		c.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"participant_id", event.ParticipantID,
			"error", err,
		)
	}
}

func (c *Coordinator) startSpan(ctx context.Context, op *PendingOperation) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, "registration."+string(op.kind), trace.WithAttributes(
		attribute.String("operation_id", op.id.String()),
		attribute.String("participant_id", op.pid.URI()),
	))
}

func finishSpan(span trace.Span, op *PendingOperation, err error) {
	span.SetAttributes(attribute.String("state", op.state.String()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
}
