package postgres

import (
	"context"
	"database/sql"
	"errors"

	"smp/internal/registry/models"
	"smp/internal/registry/ports"
	dErrors "smp/pkg/domain-errors"
)

const selectProfile = `SELECT id, name, deprecated FROM transport_profile`

// TransportProfileStore implements ports.TransportProfileManager.
type TransportProfileStore struct {
	base
}

var _ ports.TransportProfileManager = (*TransportProfileStore)(nil)

func NewTransportProfileStore(db *sql.DB) *TransportProfileStore {
	return &TransportProfileStore{base{db: db}}
}

func (s *TransportProfileStore) Create(ctx context.Context, profile *models.TransportProfile) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO transport_profile (id, name, deprecated) VALUES ($1, $2, $3)`,
		profile.ID, profile.Name, profile.Deprecated)
	if err != nil {
		err = translate("create transport profile", err)
		if dErrors.HasCode(err, dErrors.CodeAlreadyExists) {
			return dErrors.Newf(dErrors.CodeAlreadyExists, "transport profile %q already exists", profile.ID)
		}
		return err
	}
	return nil
}

func (s *TransportProfileStore) Update(ctx context.Context, profile *models.TransportProfile) (models.Change, error) {
	change := models.Unchanged
	err := s.inTx(ctx, "update transport profile", func(ctx context.Context) error {
		current, err := scanProfile(s.q(ctx).QueryRowContext(ctx, selectProfile+` WHERE id = $1 FOR UPDATE`, profile.ID))
		if errors.Is(err, sql.ErrNoRows) {
			return dErrors.Newf(dErrors.CodeNotFound, "transport profile %q not found", profile.ID)
		}
		if err != nil {
			return err
		}
		if *current == *profile {
			return nil
		}
		change, err = s.exec(ctx, "update transport profile",
			`UPDATE transport_profile SET name = $2, deprecated = $3 WHERE id = $1`,
			profile.ID, profile.Name, profile.Deprecated)
		return err
	})
	return change, err
}

func (s *TransportProfileStore) Get(ctx context.Context, profileID string) (*models.TransportProfile, error) {
	profile, err := scanProfile(s.q(ctx).QueryRowContext(ctx, selectProfile+` WHERE id = $1`, profileID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("get transport profile", err)
	}
	return profile, nil
}

func (s *TransportProfileStore) List(ctx context.Context) ([]*models.TransportProfile, error) {
	rows, err := s.q(ctx).QueryContext(ctx, selectProfile+` ORDER BY id`)
	if err != nil {
		return nil, translate("list transport profiles", err)
	}
	defer rows.Close()

	profiles := []*models.TransportProfile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, translate("list transport profiles", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list transport profiles", err)
	}
	return profiles, nil
}

func (s *TransportProfileStore) Delete(ctx context.Context, profileID string) (models.Change, error) {
	return s.exec(ctx, "delete transport profile", `DELETE FROM transport_profile WHERE id = $1`, profileID)
}

func scanProfile(row rowScanner) (*models.TransportProfile, error) {
	var p models.TransportProfile
	if err := row.Scan(&p.ID, &p.Name, &p.Deprecated); err != nil {
		return nil, err
	}
	return &p, nil
}
