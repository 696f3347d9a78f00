// Package service holds the write-side use cases of the registry. It checks
// ownership, keeps service information and redirects mutually exclusive and
// hands service group creation and deletion to the registration coordinator.
package service

import (
	"context"
	"log/slog"

	"smp/internal/registry/models"
	"smp/internal/registry/ports"
	"smp/internal/registry/registration"
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
	audit "smp/pkg/platform/audit"
	"smp/pkg/requestcontext"
)

// Managers hands out the managers of the active backend.
type Managers interface {
	ServiceGroupManager() (ports.ServiceGroupManager, error)
	ServiceInformationManager() (ports.ServiceInformationManager, error)
	RedirectManager() (ports.RedirectManager, error)
	BusinessCardManager() (ports.BusinessCardManager, error)
	UserManager() (ports.UserManager, error)
	TransportProfileManager() (ports.TransportProfileManager, error)
	SettingsManager() (ports.SettingsManager, error)
}

// Registrar creates and deletes service groups together with their locator
// registration.
type Registrar interface {
	CreateServiceGroup(ctx context.Context, group *models.ServiceGroup) (*registration.PendingOperation, error)
	DeleteServiceGroup(ctx context.Context, pid id.ParticipantID) (*registration.PendingOperation, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates registry writes on behalf of an authenticated user.
type Service struct {
	managers       Managers
	registrar      Registrar
	logger         *slog.Logger
	auditPublisher AuditPublisher
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// New constructs a Service.
func New(managers Managers, registrar Registrar, opts ...Option) *Service {
	s := &Service{managers: managers, registrar: registrar}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// requireOwner loads the participant's group and checks user owns it.
// Mismatches are always logged.
func (s *Service) requireOwner(ctx context.Context, user id.UserID, pid id.ParticipantID) (*models.ServiceGroup, error) {
	if user.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "user is required")
	}
	if err := s.requireWritable(ctx); err != nil {
		return nil, err
	}
	groups, err := s.managers.ServiceGroupManager()
	if err != nil {
		return nil, err
	}
	group, err := groups.Get(ctx, pid)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "service group %s not found", pid)
	}
	if !group.IsOwnedBy(user) {
		s.logger.WarnContext(ctx, "user does not own service group",
			"user_id", user.String(),
			"owner_id", group.OwnerID.String(),
			"participant_id", pid.URI(),
			"request_id", requestcontext.RequestID(ctx),
		)
		s.emit(ctx, audit.Event{
			Action:        string(audit.EventUnauthorizedWrite),
			ParticipantID: pid.URI(),
			UserID:        user.String(),
			Severity:      audit.SeverityWarning,
		})
		return nil, dErrors.Newf(dErrors.CodeUnauthorized, "user %s does not own service group %s", user, pid)
	}
	return group, nil
}

// requireUser checks that user exists so a service group never gets an
// unknown owner.
func (s *Service) requireUser(ctx context.Context, user id.UserID) error {
	if user.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "user is required")
	}
	if err := s.requireWritable(ctx); err != nil {
		return err
	}
	users, err := s.managers.UserManager()
	if err != nil {
		return err
	}
	u, err := users.Get(ctx, user)
	if err != nil {
		return err
	}
	if u == nil {
		s.logger.WarnContext(ctx, "write by unknown user", "user_id", user.String())
		return dErrors.Newf(dErrors.CodeUnauthorized, "user %s does not exist", user)
	}
	return nil
}

// requireWritable fails with CodeForbidden while the stored settings switch
// the user write API off.
func (s *Service) requireWritable(ctx context.Context) error {
	settings, err := s.managers.SettingsManager()
	if err != nil {
		return err
	}
	current, err := settings.Get(ctx)
	if err != nil {
		return err
	}
	if current.RESTWritableAPIDisabled {
		return dErrors.New(dErrors.CodeForbidden, "the writable API is disabled")
	}
	return nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"participant_id", event.ParticipantID,
			"error", err,
		)
	}
}

func (s *Service) emitChange(ctx context.Context, action audit.AuditEvent, user id.UserID, pid id.ParticipantID, change models.Change) {
	if !change.IsChanged() {
		return
	}
	s.emit(ctx, audit.Event{
		Action:        string(action),
		ParticipantID: pid.URI(),
		UserID:        user.String(),
	})
}
