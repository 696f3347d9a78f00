package kv

import (
	"context"

	"smp/internal/registry/models"
	"smp/internal/registry/ports"
)

var settingsKey = []byte("settings")

// SettingsStore implements ports.SettingsManager.
type SettingsStore struct {
	base
}

var _ ports.SettingsManager = (*SettingsStore)(nil)

func NewSettingsStore(store Store) *SettingsStore {
	return &SettingsStore{base{store: store}}
}

func (s *SettingsStore) Get(ctx context.Context) (*models.Settings, error) {
	var settings *models.Settings
	err := s.view(ctx, "get settings", func(tx Tx) error {
		b, err := tx.Bucket(bucketSettings)
		if err != nil {
			return err
		}
		settings, err = getJSON[models.Settings](b, settingsKey)
		return err
	})
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return models.DefaultSettings(), nil
	}
	return settings, nil
}

func (s *SettingsStore) Update(ctx context.Context, settings *models.Settings) (models.Change, error) {
	if err := settings.Validate(); err != nil {
		return models.Unchanged, err
	}
	change := models.Unchanged
	err := s.update(ctx, "update settings", func(tx Tx) error {
		b, err := tx.Bucket(bucketSettings)
		if err != nil {
			return err
		}
		changed, err := putJSON(b, settingsKey, settings)
		change = models.ChangeIf(changed)
		return err
	})
	return change, err
}
