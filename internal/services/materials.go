package services

import (
	"context"

	"github.com/localnerve/lessonsync/internal/models"
)

// ListMaterials returns the materials stored under cat, or an empty list.
func (s *Service) ListMaterials(ctx context.Context, cat models.Category) ([]models.Item, error) {
	lists := models.CategoryLists{}
	if err := s.Store.Read(ctx, models.DocMaterials, &lists); err != nil {
		return nil, err
	}
	return nonNil(lists[string(cat)]), nil
}

// UpsertMaterial replaces the material with the same id in cat, or appends it
// with a fresh id when it has none or its id is new.
func (s *Service) UpsertMaterial(ctx context.Context, cat models.Category, item models.Item) (models.Item, error) {
	var saved models.Item
	lists := models.CategoryLists{}
	err := s.Store.Update(ctx, models.DocMaterials, &lists, func() (bool, error) {
		if lists == nil {
			lists = models.CategoryLists{}
		}
		lists[string(cat)], saved = s.upsert(lists[string(cat)], item, false)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// DeleteMaterial removes the material with id from cat. A missing id is not an
// error and leaves the document untouched.
func (s *Service) DeleteMaterial(ctx context.Context, cat models.Category, id string) error {
	lists := models.CategoryLists{}
	return s.Store.Update(ctx, models.DocMaterials, &lists, func() (bool, error) {
		items, ok := lists[string(cat)]
		if !ok {
			return false, nil
		}
		filtered, removed := models.RemoveByID(items, id)
		if removed {
			lists[string(cat)] = filtered
		}
		return removed, nil
	})
}
