package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Item is a single stored record: a material, a selected material or a test.
// Domain fields are kept exactly as decoded; the services manage id and the
// two timestamps.
type Item map[string]interface{}

// ID returns the item id in string form. Clients may send numeric ids, so
// numbers are rendered the same way they appear on the wire.
func (i Item) ID() string {
	return stringField(i["id"])
}

// Name returns the item name, or "" when it has none.
func (i Item) Name() string {
	return stringField(i["name"])
}

// CreatedAt returns the createdAt timestamp, or "" when unset.
func (i Item) CreatedAt() string {
	return stringField(i["createdAt"])
}

// UpdatedAt returns the updatedAt timestamp, or "" when unset.
func (i Item) UpdatedAt() string {
	return stringField(i["updatedAt"])
}

// SameName reports whether both items carry a name and the names match
// case-insensitively.
func (i Item) SameName(other Item) bool {
	name := strings.TrimSpace(i.Name())
	return name != "" && strings.EqualFold(name, strings.TrimSpace(other.Name()))
}

// Clone returns a shallow copy of the item.
func (i Item) Clone() Item {
	out := make(Item, len(i)+3)
	for k, v := range i {
		out[k] = v
	}
	return out
}

func stringField(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return ""
}

// IndexByID returns the position of the item with the given id, or -1.
func IndexByID(items []Item, id string) int {
	if id == "" {
		return -1
	}
	for i, item := range items {
		if item.ID() == id {
			return i
		}
	}
	return -1
}

// IndexByName returns the position of the first item whose name matches
// item's name case-insensitively, or -1.
func IndexByName(items []Item, item Item) int {
	for i, existing := range items {
		if existing.SameName(item) {
			return i
		}
	}
	return -1
}

// RemoveByID filters out every item with the given id. The second result
// reports whether anything was removed.
func RemoveByID(items []Item, id string) ([]Item, bool) {
	out := items[:0:0]
	removed := false
	for _, item := range items {
		if item.ID() == id {
			removed = true
			continue
		}
		out = append(out, item)
	}
	return out, removed
}
