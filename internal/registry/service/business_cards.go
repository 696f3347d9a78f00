package service

import (
	"context"

	"smp/internal/registry/models"
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
	audit "smp/pkg/platform/audit"
)

// SaveBusinessCard creates or replaces the business card of a group user owns.
func (s *Service) SaveBusinessCard(ctx context.Context, user id.UserID, card *models.BusinessCard) (models.Change, error) {
	if err := card.Validate(); err != nil {
		return models.Unchanged, err
	}
	if _, err := s.requireOwner(ctx, user, card.ParticipantID); err != nil {
		return models.Unchanged, err
	}
	cards, err := s.managers.BusinessCardManager()
	if err != nil {
		return models.Unchanged, err
	}
	change, err := cards.CreateOrUpdate(ctx, card)
	if err != nil {
		return models.Unchanged, err
	}
	s.emitChange(ctx, audit.EventBusinessCardSaved, user, card.ParticipantID, change)
	return change, nil
}

// DeleteBusinessCard removes the card of a group user owns. It fails with
// CodeNotFound when the group has no card.
func (s *Service) DeleteBusinessCard(ctx context.Context, user id.UserID, pid id.ParticipantID) (models.Change, error) {
	if _, err := s.requireOwner(ctx, user, pid); err != nil {
		return models.Unchanged, err
	}
	cards, err := s.managers.BusinessCardManager()
	if err != nil {
		return models.Unchanged, err
	}
	change, err := cards.Delete(ctx, pid)
	if err != nil {
		return models.Unchanged, err
	}
	if !change.IsChanged() {
		return models.Unchanged, dErrors.Newf(dErrors.CodeNotFound, "service group %s has no business card", pid)
	}
	s.emitChange(ctx, audit.EventBusinessCardDeleted, user, pid, change)
	return change, nil
}
