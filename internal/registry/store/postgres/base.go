package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"smp/internal/registry/models"
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
	"smp/pkg/platform/tx"
)

const defaultTxTimeout = 5 * time.Second

// Postgres error codes the managers react to.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
)

type base struct {
	db *sql.DB
}

// q returns the transaction carried by ctx, or the pool.
func (b base) q(ctx context.Context) tx.Querier {
	return tx.QuerierFor(ctx, b.db)
}

// inTx runs fn inside a transaction, joining one already carried by ctx.
func (b base) inTx(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if _, ok := tx.From(ctx); ok {
		return translate(op, fn(ctx))
	}
	if err := ctx.Err(); err != nil {
		return translate(op, err)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTxTimeout)
		defer cancel()
	}

	sqlTx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return translate(op, err)
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(tx.WithTx(ctx, sqlTx)); err != nil {
		return translate(op, err)
	}
	return translate(op, sqlTx.Commit())
}

// exec runs a single statement and reports whether it touched any row.
func (b base) exec(ctx context.Context, op, query string, args ...any) (models.Change, error) {
	res, err := b.q(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return models.Unchanged, translate(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Unchanged, translate(op, err)
	}
	return models.ChangeIf(n > 0), nil
}

func (b base) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	if err := b.q(ctx).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, translate(op, err)
	}
	return n, nil
}

// lockGroup takes a row lock on the service group so writers of its children
// are serialised, and fails with NotFound when the group does not exist.
func (b base) lockGroup(ctx context.Context, pid id.ParticipantID) error {
	var storageID string
	err := b.q(ctx).QueryRowContext(ctx,
		`SELECT storage_id FROM servicegroup WHERE storage_id = $1 FOR UPDATE`, pid.StorageID()).Scan(&storageID)
	if errors.Is(err, sql.ErrNoRows) {
		return dErrors.Newf(dErrors.CodeNotFound, "service group %s not found", pid)
	}
	return err
}

// translate maps driver failures onto the manager error contract. Coded errors
// raised inside a transaction pass through untouched.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var coded *dErrors.Error
	if errors.As(err, &coded) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, op+" was cancelled")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return dErrors.Wrap(err, dErrors.CodeAlreadyExists, op+": already exists")
		case pgForeignKeyViolation:
			return dErrors.Wrap(err, dErrors.CodeNotFound, op+": referenced service group does not exist")
		case pgSerializationFailure:
			return dErrors.Wrap(err, dErrors.CodeConflict, op+" raced with a concurrent write")
		}
	}
	return dErrors.Wrap(err, dErrors.CodeBackend, op+" failed")
}

func encodeExtensions(ext models.Extensions) (string, error) {
	s, err := models.EncodeExtensions(ext)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeValidation, "extensions cannot be encoded")
	}
	return s, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
