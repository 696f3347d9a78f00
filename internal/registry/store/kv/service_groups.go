package kv

import (
	"context"

	"smp/internal/registry/models"
	"smp/internal/registry/ports"
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
)

// ServiceGroupStore implements ports.ServiceGroupManager.
type ServiceGroupStore struct {
	base
}

var _ ports.ServiceGroupManager = (*ServiceGroupStore)(nil)

func NewServiceGroupStore(store Store) *ServiceGroupStore {
	return &ServiceGroupStore{base{store: store}}
}

func (s *ServiceGroupStore) Create(ctx context.Context, group *models.ServiceGroup) error {
	return s.update(ctx, "create service group", func(tx Tx) error {
		b, err := tx.Bucket(bucketServiceGroups)
		if err != nil {
			return err
		}
		key := groupKey(group.ID())
		existing, err := getJSON[models.ServiceGroup](b, key)
		if err != nil {
			return err
		}
		if existing != nil {
			return dErrors.Newf(dErrors.CodeAlreadyExists, "service group %s already exists", group.ParticipantID)
		}
		_, err = putJSON(b, key, group)
		return err
	})
}

func (s *ServiceGroupStore) Update(ctx context.Context, pid id.ParticipantID, owner id.UserID, ext models.Extensions) (models.Change, error) {
	change := models.Unchanged
	err := s.update(ctx, "update service group", func(tx Tx) error {
		b, err := tx.Bucket(bucketServiceGroups)
		if err != nil {
			return err
		}
		key := groupKey(pid.StorageID())
		group, err := getJSON[models.ServiceGroup](b, key)
		if err != nil {
			return err
		}
		if group == nil {
			return dErrors.Newf(dErrors.CodeNotFound, "service group %s not found", pid)
		}
		group.OwnerID = owner
		group.Extensions = ext
		changed, err := putJSON(b, key, group)
		change = models.ChangeIf(changed)
		return err
	})
	return change, err
}

// Delete removes the group together with its service information, redirects
// and business card inside a single transaction.
func (s *ServiceGroupStore) Delete(ctx context.Context, pid id.ParticipantID) (models.Change, error) {
	change := models.Unchanged
	err := s.update(ctx, "delete service group", func(tx Tx) error {
		bs, err := buckets(tx, bucketServiceGroups, bucketServiceInfo, bucketRedirects, bucketBusinessCards)
		if err != nil {
			return err
		}
		storageID := pid.StorageID()
		removed, err := deleteKey(bs[0], groupKey(storageID))
		if err != nil || !removed {
			return err
		}
		if _, err := deletePrefix(bs[1], childPrefix(storageID)); err != nil {
			return err
		}
		if _, err := deletePrefix(bs[2], childPrefix(storageID)); err != nil {
			return err
		}
		if _, err := deleteKey(bs[3], groupKey(storageID)); err != nil {
			return err
		}
		change = models.Changed
		return nil
	})
	return change, err
}

func (s *ServiceGroupStore) Get(ctx context.Context, pid id.ParticipantID) (*models.ServiceGroup, error) {
	var group *models.ServiceGroup
	err := s.view(ctx, "get service group", func(tx Tx) error {
		b, err := tx.Bucket(bucketServiceGroups)
		if err != nil {
			return err
		}
		group, err = getJSON[models.ServiceGroup](b, groupKey(pid.StorageID()))
		return err
	})
	return group, err
}

func (s *ServiceGroupStore) Contains(ctx context.Context, pid id.ParticipantID) (bool, error) {
	group, err := s.Get(ctx, pid)
	return group != nil, err
}

func (s *ServiceGroupStore) List(ctx context.Context) ([]*models.ServiceGroup, error) {
	var groups []*models.ServiceGroup
	err := s.view(ctx, "list service groups", func(tx Tx) error {
		b, err := tx.Bucket(bucketServiceGroups)
		if err != nil {
			return err
		}
		groups, err = listJSON[models.ServiceGroup](b, nil)
		return err
	})
	return groups, err
}

func (s *ServiceGroupStore) ListByOwner(ctx context.Context, owner id.UserID) ([]*models.ServiceGroup, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	owned := []*models.ServiceGroup{}
	for _, g := range all {
		if g.IsOwnedBy(owner) {
			owned = append(owned, g)
		}
	}
	return owned, nil
}

func (s *ServiceGroupStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.view(ctx, "count service groups", func(tx Tx) error {
		b, err := tx.Bucket(bucketServiceGroups)
		if err != nil {
			return err
		}
		n, err = countKeys(b, nil)
		return err
	})
	return n, err
}
