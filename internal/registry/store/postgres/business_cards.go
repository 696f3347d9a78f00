package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"smp/internal/registry/models"
	"smp/internal/registry/ports"
	id "smp/pkg/domain"
)

const selectCard = `
	SELECT g.participant_scheme, g.participant_value, c.entities
	FROM business_card c JOIN servicegroup g ON g.storage_id = c.storage_id`

// BusinessCardStore implements ports.BusinessCardManager. Entities are kept
// as a JSONB document.
type BusinessCardStore struct {
	base
}

var _ ports.BusinessCardManager = (*BusinessCardStore)(nil)

func NewBusinessCardStore(db *sql.DB) *BusinessCardStore {
	return &BusinessCardStore{base{db: db}}
}

func (s *BusinessCardStore) CreateOrUpdate(ctx context.Context, card *models.BusinessCard) (models.Change, error) {
	entities, err := json.Marshal(card.Entities)
	if err != nil {
		return models.Unchanged, translate("save business card", err)
	}
	change := models.Unchanged
	err = s.inTx(ctx, "save business card", func(ctx context.Context) error {
		if err := s.lockGroup(ctx, card.ParticipantID); err != nil {
			return err
		}
		existing, err := s.Get(ctx, card.ParticipantID)
		if err != nil {
			return err
		}
		if existing != nil {
			stored, err := json.Marshal(existing.Entities)
			if err == nil && bytes.Equal(stored, entities) {
				return nil
			}
		}
		change, err = s.exec(ctx, "save business card", `
			INSERT INTO business_card (storage_id, entities) VALUES ($1, $2::jsonb)
			ON CONFLICT (storage_id) DO UPDATE SET entities = EXCLUDED.entities`,
			card.ID(), string(entities))
		return err
	})
	return change, err
}

func (s *BusinessCardStore) Get(ctx context.Context, pid id.ParticipantID) (*models.BusinessCard, error) {
	card, err := scanCard(s.q(ctx).QueryRowContext(ctx, selectCard+` WHERE c.storage_id = $1`, pid.StorageID()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("get business card", err)
	}
	return card, nil
}

func (s *BusinessCardStore) List(ctx context.Context) ([]*models.BusinessCard, error) {
	rows, err := s.q(ctx).QueryContext(ctx, selectCard+` ORDER BY c.storage_id`)
	if err != nil {
		return nil, translate("list business cards", err)
	}
	defer rows.Close()

	cards := []*models.BusinessCard{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, translate("list business cards", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list business cards", err)
	}
	return cards, nil
}

func (s *BusinessCardStore) Count(ctx context.Context) (int, error) {
	return s.count(ctx, "count business cards", `SELECT COUNT(*) FROM business_card`)
}

func (s *BusinessCardStore) Delete(ctx context.Context, pid id.ParticipantID) (models.Change, error) {
	return s.exec(ctx, "delete business card", `DELETE FROM business_card WHERE storage_id = $1`, pid.StorageID())
}

func scanCard(row rowScanner) (*models.BusinessCard, error) {
	var (
		card     models.BusinessCard
		entities []byte
	)
	if err := row.Scan(&card.ParticipantID.Scheme, &card.ParticipantID.Value, &entities); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(entities, &card.Entities); err != nil {
		return nil, err
	}
	return &card, nil
}
