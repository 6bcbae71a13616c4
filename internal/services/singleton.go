package services

import (
	"context"
	"fmt"

	"github.com/localnerve/lessonsync/internal/models"
	"github.com/localnerve/lessonsync/internal/utils"
)

// Singleton describes a one-record document and its default value.
type Singleton struct {
	Document string
	Default  func() models.Record
}

// The singleton documents
var (
	Homework = Singleton{
		Document: models.DocHomework,
		Default:  func() models.Record { return models.Record{"content": ""} },
	}
	Whiteboard = Singleton{
		Document: models.DocWhiteboard,
		Default:  func() models.Record { return models.Record{"drawing": nil} },
	}
	Preferences = Singleton{
		Document: models.DocPreferences,
		Default:  func() models.Record { return models.Record{} },
	}
	Progress = Singleton{
		Document: models.DocProgress,
		Default:  func() models.Record { return models.Record{} },
	}
)

// GetRecord returns the stored record, or the singleton's default.
func (s *Service) GetRecord(ctx context.Context, one Singleton) (models.Record, error) {
	var rec models.Record
	if err := s.Store.Read(ctx, one.Document, &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return one.Default(), nil
	}
	return rec, nil
}

// SetRecord stores patch plus a fresh updatedAt as the whole record. Earlier
// content is replaced, not merged.
func (s *Service) SetRecord(ctx context.Context, one Singleton, patch models.Record) (models.Record, error) {
	if patch == nil {
		return nil, fmt.Errorf("%s: empty record", one.Document)
	}

	var rec models.Record
	err := s.Store.Update(ctx, one.Document, &rec, func() (bool, error) {
		next := patch.Clone()
		prev := ""
		if rec != nil {
			prev, _ = rec["updatedAt"].(string)
		}
		next["updatedAt"] = utils.NextTimestamp(prev, s.now())
		rec = next
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}
