package service

import (
	"context"

	"smp/internal/registry/models"
	"smp/internal/registry/registration"
	id "smp/pkg/domain"
	audit "smp/pkg/platform/audit"
)

// CreateServiceGroup creates a group owned by owner. The pending operation
// must be resolved with the outcome of the surrounding request.
func (s *Service) CreateServiceGroup(ctx context.Context, owner id.UserID, pid id.ParticipantID, ext models.Extensions) (*registration.PendingOperation, error) {
	group, err := models.NewServiceGroup(pid, owner, ext)
	if err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, owner); err != nil {
		return nil, err
	}
	return s.registrar.CreateServiceGroup(ctx, group)
}

// UpdateServiceGroup replaces the extensions of a group user owns.
func (s *Service) UpdateServiceGroup(ctx context.Context, user id.UserID, pid id.ParticipantID, ext models.Extensions) (models.Change, error) {
	if err := ext.Validate(); err != nil {
		return models.Unchanged, err
	}
	group, err := s.requireOwner(ctx, user, pid)
	if err != nil {
		return models.Unchanged, err
	}
	groups, err := s.managers.ServiceGroupManager()
	if err != nil {
		return models.Unchanged, err
	}
	change, err := groups.Update(ctx, pid, group.OwnerID, ext)
	if err != nil {
		return models.Unchanged, err
	}
	s.emitChange(ctx, audit.EventServiceGroupUpdated, user, pid, change)
	return change, nil
}

// DeleteServiceGroup deletes a group user owns, with everything it owns.
func (s *Service) DeleteServiceGroup(ctx context.Context, user id.UserID, pid id.ParticipantID) (*registration.PendingOperation, error) {
	if _, err := s.requireOwner(ctx, user, pid); err != nil {
		return nil, err
	}
	return s.registrar.DeleteServiceGroup(ctx, pid)
}
