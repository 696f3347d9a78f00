package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"smp/internal/registry/models"
	"smp/internal/registry/ports"
	dErrors "smp/pkg/domain-errors"
)

const selectLocatorInfo = `
	SELECT id, display_name, dns_zone, management_service_url, client_certificate_required FROM sml_info`

// LocatorInfoStore implements ports.LocatorInfoManager.
type LocatorInfoStore struct {
	base
}

var _ ports.LocatorInfoManager = (*LocatorInfoStore)(nil)

func NewLocatorInfoStore(db *sql.DB) *LocatorInfoStore {
	return &LocatorInfoStore{base{db: db}}
}

func (s *LocatorInfoStore) Create(ctx context.Context, info *models.LocatorInfo) (*models.LocatorInfo, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	stored := *info
	stored.ID = uuid.NewString()
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO sml_info (id, display_name, dns_zone, management_service_url, client_certificate_required)
		VALUES ($1, $2, $3, $4, $5)`,
		stored.ID, stored.DisplayName, stored.DNSZone, stored.ManagementServiceURL, stored.ClientCertificateRequired)
	if err != nil {
		return nil, translate("create locator info", err)
	}
	return &stored, nil
}

func (s *LocatorInfoStore) Update(ctx context.Context, info *models.LocatorInfo) (models.Change, error) {
	if err := info.Validate(); err != nil {
		return models.Unchanged, err
	}
	change := models.Unchanged
	err := s.inTx(ctx, "update locator info", func(ctx context.Context) error {
		current, err := scanLocatorInfo(s.q(ctx).QueryRowContext(ctx, selectLocatorInfo+` WHERE id = $1 FOR UPDATE`, info.ID))
		if errors.Is(err, sql.ErrNoRows) {
			return dErrors.Newf(dErrors.CodeNotFound, "locator info %q not found", info.ID)
		}
		if err != nil {
			return err
		}
		if *current == *info {
			return nil
		}
		change, err = s.exec(ctx, "update locator info", `
			UPDATE sml_info SET display_name = $2, dns_zone = $3, management_service_url = $4,
			                    client_certificate_required = $5
			WHERE id = $1`,
			info.ID, info.DisplayName, info.DNSZone, info.ManagementServiceURL, info.ClientCertificateRequired)
		return err
	})
	return change, err
}

func (s *LocatorInfoStore) Get(ctx context.Context, infoID string) (*models.LocatorInfo, error) {
	info, err := scanLocatorInfo(s.q(ctx).QueryRowContext(ctx, selectLocatorInfo+` WHERE id = $1`, infoID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("get locator info", err)
	}
	return info, nil
}

func (s *LocatorInfoStore) List(ctx context.Context) ([]*models.LocatorInfo, error) {
	rows, err := s.q(ctx).QueryContext(ctx, selectLocatorInfo+` ORDER BY display_name, id`)
	if err != nil {
		return nil, translate("list locator info", err)
	}
	defer rows.Close()

	infos := []*models.LocatorInfo{}
	for rows.Next() {
		info, err := scanLocatorInfo(rows)
		if err != nil {
			return nil, translate("list locator info", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list locator info", err)
	}
	return infos, nil
}

func (s *LocatorInfoStore) Delete(ctx context.Context, infoID string) (models.Change, error) {
	return s.exec(ctx, "delete locator info", `DELETE FROM sml_info WHERE id = $1`, infoID)
}

func scanLocatorInfo(row rowScanner) (*models.LocatorInfo, error) {
	var l models.LocatorInfo
	if err := row.Scan(&l.ID, &l.DisplayName, &l.DNSZone, &l.ManagementServiceURL, &l.ClientCertificateRequired); err != nil {
		return nil, err
	}
	return &l, nil
}
