package postgres

import (
	"context"
	"database/sql"
	"errors"

	"smp/internal/registry/models"
	"smp/internal/registry/ports"
)

// SettingsStore implements ports.SettingsManager on a single-row table.
type SettingsStore struct {
	base
}

var _ ports.SettingsManager = (*SettingsStore)(nil)

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{base{db: db}}
}

func (s *SettingsStore) Get(ctx context.Context) (*models.Settings, error) {
	settings, err := s.load(ctx, false)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return nil, translate("get settings", err)
	}
	return settings, nil
}

func (s *SettingsStore) Update(ctx context.Context, settings *models.Settings) (models.Change, error) {
	if err := settings.Validate(); err != nil {
		return models.Unchanged, err
	}
	change := models.Unchanged
	err := s.inTx(ctx, "update settings", func(ctx context.Context) error {
		current, err := s.load(ctx, true)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if current != nil && *current == *settings {
			return nil
		}
		change, err = s.exec(ctx, "update settings", `
			INSERT INTO settings (id, locator_enabled, locator_info_id, directory_integration_enabled,
			                      directory_host_name, rest_writable_api_disabled)
			VALUES (1, $1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				locator_enabled = EXCLUDED.locator_enabled,
				locator_info_id = EXCLUDED.locator_info_id,
				directory_integration_enabled = EXCLUDED.directory_integration_enabled,
				directory_host_name = EXCLUDED.directory_host_name,
				rest_writable_api_disabled = EXCLUDED.rest_writable_api_disabled`,
			settings.LocatorEnabled, settings.LocatorInfoID, settings.DirectoryIntegrationEnabled,
			settings.DirectoryHostName, settings.RESTWritableAPIDisabled)
		return err
	})
	return change, err
}

func (s *SettingsStore) load(ctx context.Context, forUpdate bool) (*models.Settings, error) {
	query := `
		SELECT locator_enabled, locator_info_id, directory_integration_enabled,
		       directory_host_name, rest_writable_api_disabled
		FROM settings WHERE id = 1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var st models.Settings
	err := s.q(ctx).QueryRowContext(ctx, query).Scan(&st.LocatorEnabled, &st.LocatorInfoID,
		&st.DirectoryIntegrationEnabled, &st.DirectoryHostName, &st.RESTWritableAPIDisabled)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
