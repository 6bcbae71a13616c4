package services

import (
	"context"

	"github.com/localnerve/lessonsync/internal/models"
)

// ListTests returns every saved test, or an empty list.
func (s *Service) ListTests(ctx context.Context) ([]models.Item, error) {
	doc := models.TestList{Tests: []models.Item{}}
	if err := s.Store.Read(ctx, models.DocTests, &doc); err != nil {
		return nil, err
	}
	return nonNil(doc.Tests), nil
}

// UpsertTest replaces the test matching by id, or failing that by
// case-insensitive name, and appends it otherwise.
func (s *Service) UpsertTest(ctx context.Context, item models.Item) (models.Item, error) {
	var saved models.Item
	doc := models.TestList{Tests: []models.Item{}}
	err := s.Store.Update(ctx, models.DocTests, &doc, func() (bool, error) {
		doc.Tests, saved = s.upsert(doc.Tests, item, true)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// DeleteTest removes the test with id. A missing id is a no-op.
func (s *Service) DeleteTest(ctx context.Context, id string) error {
	doc := models.TestList{Tests: []models.Item{}}
	return s.Store.Update(ctx, models.DocTests, &doc, func() (bool, error) {
		filtered, removed := models.RemoveByID(doc.Tests, id)
		if removed {
			doc.Tests = filtered
		}
		return removed, nil
	})
}
