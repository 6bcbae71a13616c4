package syncer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/localnerve/lessonsync/internal/cache"
	"github.com/localnerve/lessonsync/internal/models"
)

// Local cache keys. List values are JSON arrays, progress is a JSON object,
// the rest are plain strings.
const (
	KeySavedTests = "savedTests"
	KeyHomework   = "homepageContent"
	KeyWhiteboard = "whiteboardDrawing"
	KeyTheme      = "theme"
	KeyAnimation  = "backgroundAnimation"
	KeyProgress   = "progressData"
)

// MaterialsKey is the cache key of the material list for cat, e.g.
// materialsPhotos.
func MaterialsKey(cat models.Category) string {
	return "materials" + capitalize(string(cat))
}

// SelectedKey is the cache key of the selection for cat, e.g. selectedTexts.
func SelectedKey(cat models.Category) string {
	return "selected" + capitalize(string(cat))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Local gives typed access to the client's cache.
type Local struct {
	Cache cache.Cache
}

// NewLocal wraps c.
func NewLocal(c cache.Cache) *Local {
	return &Local{Cache: c}
}

// Materials returns the cached materials for cat.
func (l *Local) Materials(cat models.Category) ([]models.Item, error) {
	return l.list(MaterialsKey(cat))
}

// SetMaterials replaces the cached materials for cat.
func (l *Local) SetMaterials(cat models.Category, items []models.Item) error {
	return l.setJSON(MaterialsKey(cat), nonNil(items))
}

// Selected returns the cached selection for cat.
func (l *Local) Selected(cat models.Category) ([]models.Item, error) {
	return l.list(SelectedKey(cat))
}

// SetSelected replaces the cached selection for cat.
func (l *Local) SetSelected(cat models.Category, items []models.Item) error {
	return l.setJSON(SelectedKey(cat), nonNil(items))
}

// Tests returns the cached saved tests.
func (l *Local) Tests() ([]models.Item, error) {
	return l.list(KeySavedTests)
}

// SetTests replaces the cached saved tests.
func (l *Local) SetTests(items []models.Item) error {
	return l.setJSON(KeySavedTests, nonNil(items))
}

// Homework returns the cached homework text.
func (l *Local) Homework() string {
	v, _ := l.Cache.Get(KeyHomework)
	return v
}

func (l *Local) SetHomework(content string) error {
	return l.Cache.Set(KeyHomework, content)
}

// Whiteboard returns the cached encoded drawing.
func (l *Local) Whiteboard() string {
	v, _ := l.Cache.Get(KeyWhiteboard)
	return v
}

func (l *Local) SetWhiteboard(drawing string) error {
	return l.Cache.Set(KeyWhiteboard, drawing)
}

func (l *Local) Theme() string {
	v, _ := l.Cache.Get(KeyTheme)
	return v
}

func (l *Local) SetTheme(theme string) error {
	return l.Cache.Set(KeyTheme, theme)
}

func (l *Local) Animation() string {
	v, _ := l.Cache.Get(KeyAnimation)
	return v
}

func (l *Local) SetAnimation(animation string) error {
	return l.Cache.Set(KeyAnimation, animation)
}

// Progress returns the cached progress record, empty when none is stored.
func (l *Local) Progress() (models.Record, error) {
	rec := models.Record{}
	raw, ok := l.Cache.Get(KeyProgress)
	if !ok || strings.TrimSpace(raw) == "" {
		return rec, nil
	}
	if err := decodeNumbers(raw, &rec); err != nil {
		return nil, fmt.Errorf("%s: %w", KeyProgress, err)
	}
	if rec == nil {
		rec = models.Record{}
	}
	return rec, nil
}

func (l *Local) SetProgress(rec models.Record) error {
	if rec == nil {
		rec = models.Record{}
	}
	return l.setJSON(KeyProgress, rec)
}

func (l *Local) list(key string) ([]models.Item, error) {
	raw, ok := l.Cache.Get(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return []models.Item{}, nil
	}
	var items []models.Item
	if err := decodeNumbers(raw, &items); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return nonNil(items), nil
}

func (l *Local) setJSON(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return l.Cache.Set(key, string(raw))
}

func decodeNumbers(raw string, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	return dec.Decode(v)
}

func nonNil(items []models.Item) []models.Item {
	if items == nil {
		return []models.Item{}
	}
	return items
}
