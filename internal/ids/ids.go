// Package ids generates record identifiers shared by the server and the sync client.
package ids

import "github.com/google/uuid"

// Generator returns identifiers unique within a collection.
type Generator interface {
	NewID() string
}

// UUID generates random (version 4) UUIDs.
type UUID struct{}

// NewID implements Generator.
func (UUID) NewID() string {
	return uuid.NewString()
}

// Default is the generator used when none is configured.
var Default Generator = UUID{}
