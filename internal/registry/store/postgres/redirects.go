package postgres

import (
	"context"
	"database/sql"
	"errors"

	"smp/internal/registry/models"
	"smp/internal/registry/ports"
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
	"smp/pkg/platform/tx"
)

const selectRedirect = `
	SELECT g.participant_scheme, g.participant_value, r.doctype_scheme, r.doctype_value,
	       r.target_href, r.subject_unique_id, r.certificate, r.extensions
	FROM redirect r JOIN servicegroup g ON g.storage_id = r.storage_id`

// RedirectStore implements ports.RedirectManager.
type RedirectStore struct {
	base
}

var _ ports.RedirectManager = (*RedirectStore)(nil)

func NewRedirectStore(db *sql.DB) *RedirectStore {
	return &RedirectStore{base{db: db}}
}

func (s *RedirectStore) CreateOrUpdate(ctx context.Context, redirect *models.Redirect) (models.Change, error) {
	ext, err := encodeExtensions(redirect.Extensions)
	if err != nil {
		return models.Unchanged, err
	}
	change := models.Unchanged
	err = s.inTx(ctx, "save redirect", func(ctx context.Context) error {
		pid, doc := redirect.ParticipantID, redirect.DocumentTypeID
		if err := s.lockGroup(ctx, pid); err != nil {
			return err
		}
		var hasInfo bool
		if err := s.q(ctx).QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM service_metadata
			               WHERE storage_id = $1 AND doctype_scheme = $2 AND doctype_value = $3)`,
			pid.StorageID(), doc.Scheme, doc.Value).Scan(&hasInfo); err != nil {
			return err
		}
		if hasInfo {
			return dErrors.Newf(dErrors.CodeConflict,
				"service information exists for %s and document type %s", pid, doc)
		}

		existing, err := s.Get(ctx, pid, doc)
		if err != nil {
			return err
		}
		if existing != nil && sameRedirect(existing, redirect) {
			return nil
		}
		change, err = s.exec(ctx, "save redirect", `
			INSERT INTO redirect (storage_id, doctype_scheme, doctype_value, target_href, subject_unique_id, certificate, extensions)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (storage_id, doctype_scheme, doctype_value) DO UPDATE SET
				target_href = EXCLUDED.target_href,
				subject_unique_id = EXCLUDED.subject_unique_id,
				certificate = EXCLUDED.certificate,
				extensions = EXCLUDED.extensions`,
			pid.StorageID(), doc.Scheme, doc.Value, redirect.TargetHref, redirect.SubjectUniqueIdentifier, redirect.Certificate, ext)
		return err
	})
	return change, err
}

func (s *RedirectStore) Get(ctx context.Context, pid id.ParticipantID, docType id.DocumentTypeID) (*models.Redirect, error) {
	redirect, err := scanRedirect(s.q(ctx).QueryRowContext(ctx,
		selectRedirect+` WHERE r.storage_id = $1 AND r.doctype_scheme = $2 AND r.doctype_value = $3`,
		pid.StorageID(), docType.Scheme, docType.Value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("get redirect", err)
	}
	return redirect, nil
}

func (s *RedirectStore) ListOfServiceGroup(ctx context.Context, pid id.ParticipantID) ([]*models.Redirect, error) {
	return s.list(ctx, selectRedirect+` WHERE r.storage_id = $1 ORDER BY r.doctype_scheme, r.doctype_value`, pid.StorageID())
}

func (s *RedirectStore) List(ctx context.Context) ([]*models.Redirect, error) {
	return s.list(ctx, selectRedirect+` ORDER BY r.storage_id, r.doctype_scheme, r.doctype_value`)
}

func (s *RedirectStore) Count(ctx context.Context) (int, error) {
	return s.count(ctx, "count redirects", `SELECT COUNT(*) FROM redirect`)
}

func (s *RedirectStore) Delete(ctx context.Context, pid id.ParticipantID, docType id.DocumentTypeID) (models.Change, error) {
	return s.exec(ctx, "delete redirect",
		`DELETE FROM redirect WHERE storage_id = $1 AND doctype_scheme = $2 AND doctype_value = $3`,
		pid.StorageID(), docType.Scheme, docType.Value)
}

func (s *RedirectStore) DeleteAllOfServiceGroup(ctx context.Context, pid id.ParticipantID) (models.Change, error) {
	return s.exec(ctx, "delete redirects of group", `DELETE FROM redirect WHERE storage_id = $1`, pid.StorageID())
}

func (s *RedirectStore) list(ctx context.Context, query string, args ...any) ([]*models.Redirect, error) {
	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate("list redirects", err)
	}
	defer rows.Close()

	redirects := []*models.Redirect{}
	for rows.Next() {
		redirect, err := scanRedirect(rows)
		if err != nil {
			return nil, translate("list redirects", err)
		}
		redirects = append(redirects, redirect)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list redirects", err)
	}
	return redirects, nil
}

func scanRedirect(row rowScanner) (*models.Redirect, error) {
	var (
		r   models.Redirect
		ext string
	)
	if err := row.Scan(&r.ParticipantID.Scheme, &r.ParticipantID.Value, &r.DocumentTypeID.Scheme, &r.DocumentTypeID.Value,
		&r.TargetHref, &r.SubjectUniqueIdentifier, &r.Certificate, &ext); err != nil {
		return nil, err
	}
	extensions, err := models.DecodeExtensions(ext)
	if err != nil {
		return nil, err
	}
	r.Extensions = extensions
	return &r, nil
}

func sameRedirect(a, b *models.Redirect) bool {
	return a.TargetHref == b.TargetHref &&
		a.SubjectUniqueIdentifier == b.SubjectUniqueIdentifier &&
		a.Certificate == b.Certificate &&
		a.Extensions.Equal(b.Extensions)
}

// redirectExists is shared with the service information writer, which must
// refuse a pair that is already redirected.
func redirectExists(ctx context.Context, q tx.Querier, pid id.ParticipantID, docType id.DocumentTypeID) (bool, error) {
	var found bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM redirect WHERE storage_id = $1 AND doctype_scheme = $2 AND doctype_value = $3)`,
		pid.StorageID(), docType.Scheme, docType.Value).Scan(&found)
	return found, err
}
