package kv

import (
	"context"

	"smp/internal/registry/models"
	"smp/internal/registry/ports"
	id "smp/pkg/domain"
)

// BusinessCardStore implements ports.BusinessCardManager.
type BusinessCardStore struct {
	base
}

var _ ports.BusinessCardManager = (*BusinessCardStore)(nil)

func NewBusinessCardStore(store Store) *BusinessCardStore {
	return &BusinessCardStore{base{store: store}}
}

func (s *BusinessCardStore) CreateOrUpdate(ctx context.Context, card *models.BusinessCard) (models.Change, error) {
	change := models.Unchanged
	err := s.update(ctx, "save business card", func(tx Tx) error {
		bs, err := buckets(tx, bucketServiceGroups, bucketBusinessCards)
		if err != nil {
			return err
		}
		if err := requireGroup(bs[0], card.ParticipantID); err != nil {
			return err
		}
		changed, err := putJSON(bs[1], groupKey(card.ID()), card)
		change = models.ChangeIf(changed)
		return err
	})
	return change, err
}

func (s *BusinessCardStore) Get(ctx context.Context, pid id.ParticipantID) (*models.BusinessCard, error) {
	var card *models.BusinessCard
	err := s.view(ctx, "get business card", func(tx Tx) error {
		b, err := tx.Bucket(bucketBusinessCards)
		if err != nil {
			return err
		}
		card, err = getJSON[models.BusinessCard](b, groupKey(pid.StorageID()))
		return err
	})
	return card, err
}

func (s *BusinessCardStore) List(ctx context.Context) ([]*models.BusinessCard, error) {
	var cards []*models.BusinessCard
	err := s.view(ctx, "list business cards", func(tx Tx) error {
		b, err := tx.Bucket(bucketBusinessCards)
		if err != nil {
			return err
		}
		cards, err = listJSON[models.BusinessCard](b, nil)
		return err
	})
	return cards, err
}

func (s *BusinessCardStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.view(ctx, "count business cards", func(tx Tx) error {
		b, err := tx.Bucket(bucketBusinessCards)
		if err != nil {
			return err
		}
		n, err = countKeys(b, nil)
		return err
	})
	return n, err
}

func (s *BusinessCardStore) Delete(ctx context.Context, pid id.ParticipantID) (models.Change, error) {
	change := models.Unchanged
	err := s.update(ctx, "delete business card", func(tx Tx) error {
		b, err := tx.Bucket(bucketBusinessCards)
		if err != nil {
			return err
		}
		removed, err := deleteKey(b, groupKey(pid.StorageID()))
		change = models.ChangeIf(removed)
		return err
	})
	return change, err
}
