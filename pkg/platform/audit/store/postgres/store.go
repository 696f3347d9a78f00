package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	audit "smp/pkg/platform/audit"
	txcontext "smp/pkg/platform/tx"
)

// Store implements audit.Store on the audit_event table. When the context
// carries a transaction the event is written inside it, so an audit record
// commits or rolls back with the change it describes.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) execer(ctx context.Context) txcontext.Querier {
	return txcontext.QuerierFor(ctx, s.db)
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO audit_event (
			id, category, occurred_at, participant_id, user_id,
			action, reason, severity, operation_id, request_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.New(),
		string(event.Category),
		event.Timestamp,
		event.ParticipantID,
		event.UserID,
		event.Action,
		event.Reason,
		string(event.Severity),
		event.OperationID,
		event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByParticipant returns the participant's events, oldest first.
func (s *Store) ListByParticipant(ctx context.Context, participantID string) ([]audit.Event, error) {
	query := `
		SELECT category, occurred_at, participant_id, user_id,
			   action, reason, severity, operation_id, request_id
		FROM audit_event
		WHERE participant_id = $1
		ORDER BY occurred_at, id
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, participantID)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListRecent returns the N most recent events, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	query := `
		SELECT category, occurred_at, participant_id, user_id,
			   action, reason, severity, operation_id, request_id
		FROM audit_event
		ORDER BY occurred_at DESC
		LIMIT $1
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	var events []audit.Event
	for rows.Next() {
		var (
			category string
			severity string
			event    audit.Event
		)
		err := rows.Scan(
			&category,
			&event.Timestamp,
			&event.ParticipantID,
			&event.UserID,
			&event.Action,
			&event.Reason,
			&severity,
			&event.OperationID,
			&event.RequestID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Category = audit.EventCategory(category)
		event.Severity = audit.Severity(severity)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
