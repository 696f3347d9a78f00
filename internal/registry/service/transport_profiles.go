package service

import (
	"context"

	"smp/internal/registry/models"
	dErrors "smp/pkg/domain-errors"
	audit "smp/pkg/platform/audit"
)

// DeleteTransportProfile removes a profile no endpoint uses. A profile still
// in use fails with CodeConflict.
func (s *Service) DeleteTransportProfile(ctx context.Context, profileID string) (models.Change, error) {
	infos, err := s.managers.ServiceInformationManager()
	if err != nil {
		return models.Unchanged, err
	}
	inUse, err := infos.ContainsEndpointWithTransportProfile(ctx, profileID)
	if err != nil {
		return models.Unchanged, err
	}
	if inUse {
		return models.Unchanged, dErrors.Newf(dErrors.CodeConflict, "transport profile %q is used by at least one endpoint", profileID)
	}
	profiles, err := s.managers.TransportProfileManager()
	if err != nil {
		return models.Unchanged, err
	}
	change, err := profiles.Delete(ctx, profileID)
	if err != nil {
		return models.Unchanged, err
	}
	if change.IsChanged() {
		s.emit(ctx, audit.Event{
			Action: string(audit.EventTransportProfileDeleted),
			Reason: profileID,
		})
	}
	return change, nil
}
