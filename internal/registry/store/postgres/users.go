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

const selectUser = `SELECT id, name, password_hash, created_at FROM smp_user`

// UserStore implements ports.UserManager.
type UserStore struct {
	base
}

var _ ports.UserManager = (*UserStore)(nil)

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{base{db: db}}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO smp_user (id, name, name_key, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		uuid.UUID(user.ID), user.Name, user.NameKey(), user.PasswordHash, user.CreatedAt)
	if err != nil {
		err = translate("create user", err)
		if dErrors.HasCode(err, dErrors.CodeAlreadyExists) {
			return dErrors.Newf(dErrors.CodeAlreadyExists, "user %q already exists", user.Name)
		}
		return err
	}
	return nil
}

func (s *UserStore) Get(ctx context.Context, userID id.UserID) (*models.User, error) {
	return s.get(ctx, selectUser+` WHERE id = $1`, uuid.UUID(userID))
}

func (s *UserStore) GetByName(ctx context.Context, name string) (*models.User, error) {
	return s.get(ctx, selectUser+` WHERE name_key = $1`, models.UserNameKey(name))
}

func (s *UserStore) get(ctx context.Context, query string, args ...any) (*models.User, error) {
	user, err := scanUser(s.q(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("get user", err)
	}
	return user, nil
}

func (s *UserStore) List(ctx context.Context) ([]*models.User, error) {
	rows, err := s.q(ctx).QueryContext(ctx, selectUser+` ORDER BY name_key`)
	if err != nil {
		return nil, translate("list users", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, translate("list users", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list users", err)
	}
	return users, nil
}

// Delete refuses to remove a user that still owns service groups.
func (s *UserStore) Delete(ctx context.Context, userID id.UserID) (models.Change, error) {
	change := models.Unchanged
	err := s.inTx(ctx, "delete user", func(ctx context.Context) error {
		var owned sql.NullString
		err := s.q(ctx).QueryRowContext(ctx,
			`SELECT MIN(participant_scheme || '::' || participant_value) FROM servicegroup WHERE owner_id = $1`,
			uuid.UUID(userID)).Scan(&owned)
		if err != nil {
			return err
		}
		if owned.Valid {
			return dErrors.Newf(dErrors.CodeConflict, "user %s still owns service group %s", userID, owned.String)
		}
		change, err = s.exec(ctx, "delete user", `DELETE FROM smp_user WHERE id = $1`, uuid.UUID(userID))
		return err
	})
	return change, err
}

func (s *UserStore) Authenticate(ctx context.Context, name, password string) (*models.User, error) {
	user, err := s.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CheckPassword(password) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid user name or password")
	}
	return user, nil
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		user   models.User
		userID uuid.UUID
	)
	if err := row.Scan(&userID, &user.Name, &user.PasswordHash, &user.CreatedAt); err != nil {
		return nil, err
	}
	user.ID = id.UserID(userID)
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}
