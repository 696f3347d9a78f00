package kv

import (
	"context"

	"smp/internal/registry/models"
	"smp/internal/registry/ports"
	dErrors "smp/pkg/domain-errors"
)

// TransportProfileStore implements ports.TransportProfileManager.
type TransportProfileStore struct {
	base
}

var _ ports.TransportProfileManager = (*TransportProfileStore)(nil)

func NewTransportProfileStore(store Store) *TransportProfileStore {
	return &TransportProfileStore{base{store: store}}
}

func (s *TransportProfileStore) Create(ctx context.Context, profile *models.TransportProfile) error {
	return s.update(ctx, "create transport profile", func(tx Tx) error {
		b, err := tx.Bucket(bucketTransportProfiles)
		if err != nil {
			return err
		}
		existing, err := getJSON[models.TransportProfile](b, []byte(profile.ID))
		if err != nil {
			return err
		}
		if existing != nil {
			return dErrors.Newf(dErrors.CodeAlreadyExists, "transport profile %q already exists", profile.ID)
		}
		_, err = putJSON(b, []byte(profile.ID), profile)
		return err
	})
}

func (s *TransportProfileStore) Update(ctx context.Context, profile *models.TransportProfile) (models.Change, error) {
	change := models.Unchanged
	err := s.update(ctx, "update transport profile", func(tx Tx) error {
		b, err := tx.Bucket(bucketTransportProfiles)
		if err != nil {
			return err
		}
		existing, err := getJSON[models.TransportProfile](b, []byte(profile.ID))
		if err != nil {
			return err
		}
		if existing == nil {
			return dErrors.Newf(dErrors.CodeNotFound, "transport profile %q not found", profile.ID)
		}
		changed, err := putJSON(b, []byte(profile.ID), profile)
		change = models.ChangeIf(changed)
		return err
	})
	return change, err
}

func (s *TransportProfileStore) Get(ctx context.Context, profileID string) (*models.TransportProfile, error) {
	var profile *models.TransportProfile
	err := s.view(ctx, "get transport profile", func(tx Tx) error {
		b, err := tx.Bucket(bucketTransportProfiles)
		if err != nil {
			return err
		}
		profile, err = getJSON[models.TransportProfile](b, []byte(profileID))
		return err
	})
	return profile, err
}

func (s *TransportProfileStore) List(ctx context.Context) ([]*models.TransportProfile, error) {
	var profiles []*models.TransportProfile
	err := s.view(ctx, "list transport profiles", func(tx Tx) error {
		b, err := tx.Bucket(bucketTransportProfiles)
		if err != nil {
			return err
		}
		profiles, err = listJSON[models.TransportProfile](b, nil)
		return err
	})
	return profiles, err
}

func (s *TransportProfileStore) Delete(ctx context.Context, profileID string) (models.Change, error) {
	change := models.Unchanged
	err := s.update(ctx, "delete transport profile", func(tx Tx) error {
		b, err := tx.Bucket(bucketTransportProfiles)
		if err != nil {
			return err
		}
		removed, err := deleteKey(b, []byte(profileID))
		change = models.ChangeIf(removed)
		return err
	})
	return change, err
}
