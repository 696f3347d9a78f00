package kv

import (
	"context"
	"slices"

	"smp/internal/registry/models"
	"smp/internal/registry/ports"
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
)

// ServiceInformationStore implements ports.ServiceInformationManager.
type ServiceInformationStore struct {
	base
}

var _ ports.ServiceInformationManager = (*ServiceInformationStore)(nil)

func NewServiceInformationStore(store Store) *ServiceInformationStore {
	return &ServiceInformationStore{base{store: store}}
}

// Merge stores info, replacing any previous processes for the pair.
func (s *ServiceInformationStore) Merge(ctx context.Context, info *models.ServiceInformation) (models.Change, error) {
	change := models.Unchanged
	err := s.update(ctx, "merge service information", func(tx Tx) error {
		bs, err := buckets(tx, bucketServiceGroups, bucketRedirects, bucketServiceInfo)
		if err != nil {
			return err
		}
		if err := requireGroup(bs[0], info.ParticipantID); err != nil {
			return err
		}
		key := []byte(info.Key())
		redirect, err := getJSON[models.Redirect](bs[1], key)
		if err != nil {
			return err
		}
		if redirect != nil {
			return dErrors.Newf(dErrors.CodeConflict,
				"a redirect exists for %s and document type %s", info.ParticipantID, info.DocumentTypeID)
		}
		changed, err := putJSON(bs[2], key, info)
		change = models.ChangeIf(changed)
		return err
	})
	return change, err
}

func (s *ServiceInformationStore) Get(ctx context.Context, pid id.ParticipantID, docType id.DocumentTypeID) (*models.ServiceInformation, error) {
	var info *models.ServiceInformation
	err := s.view(ctx, "get service information", func(tx Tx) error {
		b, err := tx.Bucket(bucketServiceInfo)
		if err != nil {
			return err
		}
		info, err = getJSON[models.ServiceInformation](b, []byte(models.DocumentKey(pid, docType)))
		return err
	})
	return info, err
}

func (s *ServiceInformationStore) ListOfServiceGroup(ctx context.Context, pid id.ParticipantID) ([]*models.ServiceInformation, error) {
	return s.list(ctx, childPrefix(pid.StorageID()))
}

func (s *ServiceInformationStore) List(ctx context.Context) ([]*models.ServiceInformation, error) {
	return s.list(ctx, nil)
}

func (s *ServiceInformationStore) list(ctx context.Context, prefix []byte) ([]*models.ServiceInformation, error) {
	var infos []*models.ServiceInformation
	err := s.view(ctx, "list service information", func(tx Tx) error {
		b, err := tx.Bucket(bucketServiceInfo)
		if err != nil {
			return err
		}
		infos, err = listJSON[models.ServiceInformation](b, prefix)
		return err
	})
	return infos, err
}

func (s *ServiceInformationStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.view(ctx, "count service information", func(tx Tx) error {
		b, err := tx.Bucket(bucketServiceInfo)
		if err != nil {
			return err
		}
		n, err = countKeys(b, nil)
		return err
	})
	return n, err
}

func (s *ServiceInformationStore) Delete(ctx context.Context, pid id.ParticipantID, docType id.DocumentTypeID) (models.Change, error) {
	change := models.Unchanged
	err := s.update(ctx, "delete service information", func(tx Tx) error {
		b, err := tx.Bucket(bucketServiceInfo)
		if err != nil {
			return err
		}
		removed, err := deleteKey(b, []byte(models.DocumentKey(pid, docType)))
		change = models.ChangeIf(removed)
		return err
	})
	return change, err
}

func (s *ServiceInformationStore) DeleteAllOfServiceGroup(ctx context.Context, pid id.ParticipantID) (models.Change, error) {
	change := models.Unchanged
	err := s.update(ctx, "delete service information of group", func(tx Tx) error {
		b, err := tx.Bucket(bucketServiceInfo)
		if err != nil {
			return err
		}
		removed, err := deletePrefix(b, childPrefix(pid.StorageID()))
		change = models.ChangeIf(removed)
		return err
	})
	return change, err
}

func (s *ServiceInformationStore) ContainsEndpointWithTransportProfile(ctx context.Context, profileID string) (bool, error) {
	infos, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	for _, info := range infos {
		if slices.Contains(info.TransportProfiles(), profileID) {
			return true, nil
		}
	}
	return false, nil
}

func requireGroup(b Bucket, pid id.ParticipantID) error {
	group, err := getJSON[models.ServiceGroup](b, groupKey(pid.StorageID()))
	if err != nil {
		return err
	}
	if group == nil {
		return dErrors.Newf(dErrors.CodeNotFound, "service group %s not found", pid)
	}
	return nil
}
