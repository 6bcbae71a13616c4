package services

import (
	"time"

	"github.com/localnerve/lessonsync/internal/ids"
	"github.com/localnerve/lessonsync/internal/models"
	"github.com/localnerve/lessonsync/internal/store"
	"github.com/localnerve/lessonsync/internal/utils"
)

// Service implements the collection handlers over a document store.
// Each call is a stateless read-modify-write of one document.
type Service struct {
	Store *store.Store
	IDs   ids.Generator
	Clock func() time.Time
}

// New creates a Service with the default id generator and wall clock.
func New(st *store.Store) *Service {
	return &Service{Store: st, IDs: ids.Default, Clock: time.Now}
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

func (s *Service) newID() string {
	if s.IDs == nil {
		return ids.Default.NewID()
	}
	return s.IDs.NewID()
}

// upsert places incoming into items and returns the updated list and the
// stored item. A matching id wins over a matching name; byName enables the
// case-insensitive name match used for tests. A replacement keeps its
// position and its original createdAt, and takes the stored id when the
// incoming item has none.
func (s *Service) upsert(items []models.Item, incoming models.Item, byName bool) ([]models.Item, models.Item) {
	item := incoming.Clone()
	now := s.now()

	idx := models.IndexByID(items, item.ID())
	if idx < 0 && byName {
		idx = models.IndexByName(items, item)
	}

	if idx >= 0 {
		prev := items[idx]
		if item.ID() == "" {
			item["id"] = prev["id"]
		}
		if created := prev.CreatedAt(); created != "" {
			item["createdAt"] = created
		} else if item.CreatedAt() == "" {
			item["createdAt"] = utils.Timestamp(now)
		}
		item["updatedAt"] = utils.NextTimestamp(prev.UpdatedAt(), now)
		items[idx] = item
		return items, item
	}

	if item.ID() == "" {
		item["id"] = s.newID()
	}
	if item.CreatedAt() == "" {
		item["createdAt"] = utils.Timestamp(now)
	}
	item["updatedAt"] = utils.Timestamp(now)
	return append(items, item), item
}

func nonNil(items []models.Item) []models.Item {
	if items == nil {
		return []models.Item{}
	}
	return items
}
