package kv

import (
	"context"

	"smp/internal/registry/models"
	"smp/internal/registry/ports"
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
)

// RedirectStore implements ports.RedirectManager.
type RedirectStore struct {
	base
}

var _ ports.RedirectManager = (*RedirectStore)(nil)

func NewRedirectStore(store Store) *RedirectStore {
	return &RedirectStore{base{store: store}}
}

func (s *RedirectStore) CreateOrUpdate(ctx context.Context, redirect *models.Redirect) (models.Change, error) {
	change := models.Unchanged
	err := s.update(ctx, "save redirect", func(tx Tx) error {
		bs, err := buckets(tx, bucketServiceGroups, bucketServiceInfo, bucketRedirects)
		if err != nil {
			return err
		}
		if err := requireGroup(bs[0], redirect.ParticipantID); err != nil {
			return err
		}
		key := []byte(redirect.Key())
		info, err := getJSON[models.ServiceInformation](bs[1], key)
		if err != nil {
			return err
		}
		if info != nil {
			return dErrors.Newf(dErrors.CodeConflict,
				"service information exists for %s and document type %s", redirect.ParticipantID, redirect.DocumentTypeID)
		}
		changed, err := putJSON(bs[2], key, redirect)
		change = models.ChangeIf(changed)
		return err
	})
	return change, err
}

func (s *RedirectStore) Get(ctx context.Context, pid id.ParticipantID, docType id.DocumentTypeID) (*models.Redirect, error) {
	var redirect *models.Redirect
	err := s.view(ctx, "get redirect", func(tx Tx) error {
		b, err := tx.Bucket(bucketRedirects)
		if err != nil {
			return err
		}
		redirect, err = getJSON[models.Redirect](b, []byte(models.DocumentKey(pid, docType)))
		return err
	})
	return redirect, err
}

func (s *RedirectStore) ListOfServiceGroup(ctx context.Context, pid id.ParticipantID) ([]*models.Redirect, error) {
	return s.list(ctx, childPrefix(pid.StorageID()))
}

func (s *RedirectStore) List(ctx context.Context) ([]*models.Redirect, error) {
	return s.list(ctx, nil)
}

func (s *RedirectStore) list(ctx context.Context, prefix []byte) ([]*models.Redirect, error) {
	var redirects []*models.Redirect
	err := s.view(ctx, "list redirects", func(tx Tx) error {
		b, err := tx.Bucket(bucketRedirects)
		if err != nil {
			return err
		}
		redirects, err = listJSON[models.Redirect](b, prefix)
		return err
	})
	return redirects, err
}

func (s *RedirectStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.view(ctx, "count redirects", func(tx Tx) error {
		b, err := tx.Bucket(bucketRedirects)
		if err != nil {
			return err
		}
		n, err = countKeys(b, nil)
		return err
	})
	return n, err
}

func (s *RedirectStore) Delete(ctx context.Context, pid id.ParticipantID, docType id.DocumentTypeID) (models.Change, error) {
	change := models.Unchanged
	err := s.update(ctx, "delete redirect", func(tx Tx) error {
		b, err := tx.Bucket(bucketRedirects)
		if err != nil {
			return err
		}
		removed, err := deleteKey(b, []byte(models.DocumentKey(pid, docType)))
		change = models.ChangeIf(removed)
		return err
	})
	return change, err
}

func (s *RedirectStore) DeleteAllOfServiceGroup(ctx context.Context, pid id.ParticipantID) (models.Change, error) {
	change := models.Unchanged
	err := s.update(ctx, "delete redirects of group", func(tx Tx) error {
		b, err := tx.Bucket(bucketRedirects)
		if err != nil {
			return err
		}
		removed, err := deletePrefix(b, childPrefix(pid.StorageID()))
		change = models.ChangeIf(removed)
		return err
	})
	return change, err
}
