package models

import (
	"errors"
	"time"
)

// Document names, one per persisted collection.
const (
	DocMaterials   = "materials"
	DocSelected    = "selected"
	DocTests       = "tests"
	DocHomework    = "homework"
	DocWhiteboard  = "whiteboard"
	DocPreferences = "preferences"
	DocProgress    = "progress"
)

// Category is a material bucket inside materials.json and selected.json.
type Category string

const (
	CategoryPhotos    Category = "photos"
	CategoryTexts     Category = "texts"
	CategoryExercises Category = "exercises"
	CategoryHomework  Category = "homework"
)

// Categories lists every accepted category in display order.
var Categories = []Category{CategoryPhotos, CategoryTexts, CategoryExercises, CategoryHomework}

// ErrUnknownCategory is returned for a category outside Categories.
var ErrUnknownCategory = errors.New("unknown material type")

// ParseCategory validates a category path segment.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// CategoryLists is the shape of materials.json and selected.json:
// { [category]: Item[] }.
type CategoryLists map[string][]Item

// TestList is the shape of tests.json.
type TestList struct {
	Tests []Item `json:"tests"`
}

// Record is a singleton document such as homework or preferences.
type Record map[string]interface{}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// StoredDocument is one named JSON document held by the database backend.
type StoredDocument struct {
	DocumentID   uint64 `gorm:"primaryKey;autoIncrement"`
	DocumentName string `gorm:"uniqueIndex;size:255;not null"`
	Content      JSON   `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the table name for StoredDocument
func (StoredDocument) TableName() string {
	return "documents"
}
