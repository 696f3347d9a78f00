package kv

import (
	"context"

	"github.com/google/uuid"

	"smp/internal/registry/models"
	"smp/internal/registry/ports"
	dErrors "smp/pkg/domain-errors"
)

// LocatorInfoStore implements ports.LocatorInfoManager.
type LocatorInfoStore struct {
	base
}

var _ ports.LocatorInfoManager = (*LocatorInfoStore)(nil)

func NewLocatorInfoStore(store Store) *LocatorInfoStore {
	return &LocatorInfoStore{base{store: store}}
}

func (s *LocatorInfoStore) Create(ctx context.Context, info *models.LocatorInfo) (*models.LocatorInfo, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	stored := *info
	stored.ID = uuid.NewString()
	err := s.update(ctx, "create locator info", func(tx Tx) error {
		b, err := tx.Bucket(bucketLocatorInfo)
		if err != nil {
			return err
		}
		_, err = putJSON(b, []byte(stored.ID), &stored)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *LocatorInfoStore) Update(ctx context.Context, info *models.LocatorInfo) (models.Change, error) {
	if err := info.Validate(); err != nil {
		return models.Unchanged, err
	}
	change := models.Unchanged
	err := s.update(ctx, "update locator info", func(tx Tx) error {
		b, err := tx.Bucket(bucketLocatorInfo)
		if err != nil {
			return err
		}
		existing, err := getJSON[models.LocatorInfo](b, []byte(info.ID))
		if err != nil {
			return err
		}
		if existing == nil {
			return dErrors.Newf(dErrors.CodeNotFound, "locator info %q not found", info.ID)
		}
		changed, err := putJSON(b, []byte(info.ID), info)
		change = models.ChangeIf(changed)
		return err
	})
	return change, err
}

func (s *LocatorInfoStore) Get(ctx context.Context, infoID string) (*models.LocatorInfo, error) {
	var info *models.LocatorInfo
	err := s.view(ctx, "get locator info", func(tx Tx) error {
		b, err := tx.Bucket(bucketLocatorInfo)
		if err != nil {
			return err
		}
		info, err = getJSON[models.LocatorInfo](b, []byte(infoID))
		return err
	})
	return info, err
}

func (s *LocatorInfoStore) List(ctx context.Context) ([]*models.LocatorInfo, error) {
	var infos []*models.LocatorInfo
	err := s.view(ctx, "list locator info", func(tx Tx) error {
		b, err := tx.Bucket(bucketLocatorInfo)
		if err != nil {
			return err
		}
		infos, err = listJSON[models.LocatorInfo](b, nil)
		return err
	})
	return infos, err
}

func (s *LocatorInfoStore) Delete(ctx context.Context, infoID string) (models.Change, error) {
	change := models.Unchanged
	err := s.update(ctx, "delete locator info", func(tx Tx) error {
		b, err := tx.Bucket(bucketLocatorInfo)
		if err != nil {
			return err
		}
		removed, err := deleteKey(b, []byte(infoID))
		change = models.ChangeIf(removed)
		return err
	})
	return change, err
}
