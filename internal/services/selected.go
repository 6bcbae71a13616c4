package services

import (
	"context"

	"github.com/localnerve/lessonsync/internal/models"
)

// GetSelected returns the selection stored for cat, or an empty list.
func (s *Service) GetSelected(ctx context.Context, cat models.Category) ([]models.Item, error) {
	lists := models.CategoryLists{}
	if err := s.Store.Read(ctx, models.DocSelected, &lists); err != nil {
		return nil, err
	}
	return nonNil(lists[string(cat)]), nil
}

// SetSelected replaces the whole selection for cat. The caller sends the
// complete list; nothing is merged.
func (s *Service) SetSelected(ctx context.Context, cat models.Category, items []models.Item) ([]models.Item, error) {
	items = nonNil(items)
	lists := models.CategoryLists{}
	err := s.Store.Update(ctx, models.DocSelected, &lists, func() (bool, error) {
		if lists == nil {
			lists = models.CategoryLists{}
		}
		lists[string(cat)] = items
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
