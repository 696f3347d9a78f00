package service

import (
	"context"

	"smp/internal/registry/models"
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
	audit "smp/pkg/platform/audit"
)

// SaveServiceInformation stores info for its document type, replacing a
// redirect for the same pair if there is one. Every endpoint must use a known
// transport profile.
func (s *Service) SaveServiceInformation(ctx context.Context, user id.UserID, info *models.ServiceInformation) (models.Change, error) {
	if err := info.Validate(); err != nil {
		return models.Unchanged, err
	}
	if _, err := s.requireOwner(ctx, user, info.ParticipantID); err != nil {
		return models.Unchanged, err
	}
	if err := s.requireTransportProfiles(ctx, info); err != nil {
		return models.Unchanged, err
	}

	redirects, err := s.managers.RedirectManager()
	if err != nil {
		return models.Unchanged, err
	}
	infos, err := s.managers.ServiceInformationManager()
	if err != nil {
		return models.Unchanged, err
	}

	removed, err := redirects.Delete(ctx, info.ParticipantID, info.DocumentTypeID)
	if err != nil {
		return models.Unchanged, err
	}
	merged, err := infos.Merge(ctx, info)
	if err != nil {
		return removed, err
	}
	change := removed.Or(merged)
	s.emitChange(ctx, audit.EventServiceMetadataSaved, user, info.ParticipantID, change)
	return change, nil
}

// SaveRedirect stores redirect for its document type, replacing service
// information for the same pair if there is one.
func (s *Service) SaveRedirect(ctx context.Context, user id.UserID, redirect *models.Redirect) (models.Change, error) {
	if err := redirect.Validate(); err != nil {
		return models.Unchanged, err
	}
	if _, err := s.requireOwner(ctx, user, redirect.ParticipantID); err != nil {
		return models.Unchanged, err
	}

	infos, err := s.managers.ServiceInformationManager()
	if err != nil {
		return models.Unchanged, err
	}
	redirects, err := s.managers.RedirectManager()
	if err != nil {
		return models.Unchanged, err
	}

	removed, err := infos.Delete(ctx, redirect.ParticipantID, redirect.DocumentTypeID)
	if err != nil {
		return models.Unchanged, err
	}
	saved, err := redirects.CreateOrUpdate(ctx, redirect)
	if err != nil {
		return removed, err
	}
	change := removed.Or(saved)
	s.emitChange(ctx, audit.EventServiceMetadataSaved, user, redirect.ParticipantID, change)
	return change, nil
}

// DeleteServiceMetadata removes whatever is stored for the pair, service
// information or redirect. It fails with CodeNotFound when neither exists.
func (s *Service) DeleteServiceMetadata(ctx context.Context, user id.UserID, pid id.ParticipantID, docType id.DocumentTypeID) (models.Change, error) {
	if _, err := s.requireOwner(ctx, user, pid); err != nil {
		return models.Unchanged, err
	}
	infos, err := s.managers.ServiceInformationManager()
	if err != nil {
		return models.Unchanged, err
	}
	redirects, err := s.managers.RedirectManager()
	if err != nil {
		return models.Unchanged, err
	}

	infoChange, err := infos.Delete(ctx, pid, docType)
	if err != nil {
		return models.Unchanged, err
	}
	redirectChange, err := redirects.Delete(ctx, pid, docType)
	if err != nil {
		return infoChange, err
	}
	change := infoChange.Or(redirectChange)
	if !change.IsChanged() {
		return models.Unchanged, dErrors.Newf(dErrors.CodeNotFound, "no service metadata for %s and %s", pid, docType)
	}
	s.emitChange(ctx, audit.EventServiceMetadataDeleted, user, pid, change)
	return change, nil
}

func (s *Service) requireTransportProfiles(ctx context.Context, info *models.ServiceInformation) error {
	profiles, err := s.managers.TransportProfileManager()
	if err != nil {
		return err
	}
	for _, profileID := range info.TransportProfiles() {
		p, err := profiles.Get(ctx, profileID)
		if err != nil {
			return err
		}
		if p == nil {
			return dErrors.Newf(dErrors.CodeValidation, "transport profile %q is not known", profileID)
		}
	}
	return nil
}
