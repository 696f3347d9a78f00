package kv

import (
	"context"
	"errors"

	"smp/internal/registry/models"
	"smp/internal/registry/ports"
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
)

// UserStore implements ports.UserManager. Users are keyed by ID with a
// secondary index from the normalised name to the ID.
type UserStore struct {
	base
}

var _ ports.UserManager = (*UserStore)(nil)

func NewUserStore(store Store) *UserStore {
	return &UserStore{base{store: store}}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	return s.update(ctx, "create user", func(tx Tx) error {
		bs, err := buckets(tx, bucketUsers, bucketUsersByName)
		if err != nil {
			return err
		}
		nameKey := []byte(user.NameKey())
		if _, err := bs[1].Get(nameKey); err == nil {
			return dErrors.Newf(dErrors.CodeAlreadyExists, "user %q already exists", user.Name)
		} else if !errors.Is(err, ErrKeyNotFound) {
			return err
		}
		existing, err := getJSON[models.User](bs[0], []byte(user.ID.String()))
		if err != nil {
			return err
		}
		if existing != nil {
			return dErrors.Newf(dErrors.CodeAlreadyExists, "user %s already exists", user.ID)
		}
		if _, err := putJSON(bs[0], []byte(user.ID.String()), user); err != nil {
			return err
		}
		return bs[1].Put(nameKey, []byte(user.ID.String()))
	})
}

func (s *UserStore) Get(ctx context.Context, userID id.UserID) (*models.User, error) {
	var user *models.User
	err := s.view(ctx, "get user", func(tx Tx) error {
		b, err := tx.Bucket(bucketUsers)
		if err != nil {
			return err
		}
		user, err = getJSON[models.User](b, []byte(userID.String()))
		return err
	})
	return user, err
}

func (s *UserStore) GetByName(ctx context.Context, name string) (*models.User, error) {
	var user *models.User
	err := s.view(ctx, "get user by name", func(tx Tx) error {
		bs, err := buckets(tx, bucketUsers, bucketUsersByName)
		if err != nil {
			return err
		}
		userID, err := bs[1].Get([]byte(models.UserNameKey(name)))
		if errors.Is(err, ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		user, err = getJSON[models.User](bs[0], userID)
		return err
	})
	return user, err
}

func (s *UserStore) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := s.view(ctx, "list users", func(tx Tx) error {
		b, err := tx.Bucket(bucketUsers)
		if err != nil {
			return err
		}
		users, err = listJSON[models.User](b, nil)
		return err
	})
	return users, err
}

// Delete refuses to remove a user that still owns service groups.
func (s *UserStore) Delete(ctx context.Context, userID id.UserID) (models.Change, error) {
	change := models.Unchanged
	err := s.update(ctx, "delete user", func(tx Tx) error {
		bs, err := buckets(tx, bucketUsers, bucketUsersByName, bucketServiceGroups)
		if err != nil {
			return err
		}
		user, err := getJSON[models.User](bs[0], []byte(userID.String()))
		if err != nil || user == nil {
			return err
		}
		groups, err := listJSON[models.ServiceGroup](bs[2], nil)
		if err != nil {
			return err
		}
		for _, g := range groups {
			if g.IsOwnedBy(userID) {
				return dErrors.Newf(dErrors.CodeConflict, "user %q still owns service group %s", user.Name, g.ParticipantID)
			}
		}
		if err := bs[0].Delete([]byte(userID.String())); err != nil {
			return err
		}
		if err := bs[1].Delete([]byte(user.NameKey())); err != nil {
			return err
		}
		change = models.Changed
		return nil
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
