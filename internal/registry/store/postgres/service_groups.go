package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"smp/internal/registry/models"
	"smp/internal/registry/ports"
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
)

const selectGroup = `SELECT participant_scheme, participant_value, owner_id, extensions FROM servicegroup`

// ServiceGroupStore implements ports.ServiceGroupManager.
type ServiceGroupStore struct {
	base
}

var _ ports.ServiceGroupManager = (*ServiceGroupStore)(nil)

func NewServiceGroupStore(db *sql.DB) *ServiceGroupStore {
	return &ServiceGroupStore{base{db: db}}
}

func (s *ServiceGroupStore) Create(ctx context.Context, group *models.ServiceGroup) error {
	ext, err := encodeExtensions(group.Extensions)
	if err != nil {
		return err
	}
	_, err = s.q(ctx).ExecContext(ctx, `
		INSERT INTO servicegroup (storage_id, participant_scheme, participant_value, owner_id, extensions)
		VALUES ($1, $2, $3, $4, $5)`,
		group.ID(), group.ParticipantID.Scheme, group.ParticipantID.Value, uuid.UUID(group.OwnerID), ext)
	if err != nil {
		err = translate("create service group", err)
		if dErrors.HasCode(err, dErrors.CodeAlreadyExists) {
			return dErrors.Newf(dErrors.CodeAlreadyExists, "service group %s already exists", group.ParticipantID)
		}
		return err
	}
	return nil
}

func (s *ServiceGroupStore) Update(ctx context.Context, pid id.ParticipantID, owner id.UserID, ext models.Extensions) (models.Change, error) {
	encoded, err := encodeExtensions(ext)
	if err != nil {
		return models.Unchanged, err
	}
	change := models.Unchanged
	err = s.inTx(ctx, "update service group", func(ctx context.Context) error {
		current, err := scanGroup(s.q(ctx).QueryRowContext(ctx, selectGroup+` WHERE storage_id = $1 FOR UPDATE`, pid.StorageID()))
		if errors.Is(err, sql.ErrNoRows) {
			return dErrors.Newf(dErrors.CodeNotFound, "service group %s not found", pid)
		}
		if err != nil {
			return err
		}
		if current.OwnerID == owner && current.Extensions.Equal(ext) {
			return nil
		}
		change, err = s.exec(ctx, "update service group",
			`UPDATE servicegroup SET owner_id = $2, extensions = $3 WHERE storage_id = $1`,
			pid.StorageID(), uuid.UUID(owner), encoded)
		return err
	})
	return change, err
}

// Delete relies on ON DELETE CASCADE for the group's children.
func (s *ServiceGroupStore) Delete(ctx context.Context, pid id.ParticipantID) (models.Change, error) {
	return s.exec(ctx, "delete service group", `DELETE FROM servicegroup WHERE storage_id = $1`, pid.StorageID())
}

func (s *ServiceGroupStore) Get(ctx context.Context, pid id.ParticipantID) (*models.ServiceGroup, error) {
	group, err := scanGroup(s.q(ctx).QueryRowContext(ctx, selectGroup+` WHERE storage_id = $1`, pid.StorageID()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("get service group", err)
	}
	return group, nil
}

func (s *ServiceGroupStore) Contains(ctx context.Context, pid id.ParticipantID) (bool, error) {
	var found bool
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM servicegroup WHERE storage_id = $1)`, pid.StorageID()).Scan(&found)
	if err != nil {
		return false, translate("check service group", err)
	}
	return found, nil
}

func (s *ServiceGroupStore) List(ctx context.Context) ([]*models.ServiceGroup, error) {
	return s.list(ctx, selectGroup+` ORDER BY storage_id`)
}

func (s *ServiceGroupStore) ListByOwner(ctx context.Context, owner id.UserID) ([]*models.ServiceGroup, error) {
	return s.list(ctx, selectGroup+` WHERE owner_id = $1 ORDER BY storage_id`, uuid.UUID(owner))
}

func (s *ServiceGroupStore) Count(ctx context.Context) (int, error) {
	return s.count(ctx, "count service groups", `SELECT COUNT(*) FROM servicegroup`)
}

func (s *ServiceGroupStore) list(ctx context.Context, query string, args ...any) ([]*models.ServiceGroup, error) {
	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate("list service groups", err)
	}
	defer rows.Close()

	groups := []*models.ServiceGroup{}
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, translate("list service groups", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list service groups", err)
	}
	return groups, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGroup(row rowScanner) (*models.ServiceGroup, error) {
	var (
		group models.ServiceGroup
		owner uuid.UUID
		ext   string
	)
	if err := row.Scan(&group.ParticipantID.Scheme, &group.ParticipantID.Value, &owner, &ext); err != nil {
		return nil, err
	}
	group.OwnerID = id.UserID(owner)
	extensions, err := models.DecodeExtensions(ext)
	if err != nil {
		return nil, err
	}
	group.Extensions = extensions
	return &group, nil
}
