// Package tag manages the shared tag reference entities that datasets link to.
package tag

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a tag is not found.
var ErrNotFound = errors.New("tag not found")

// Tag is an independently owned reference entity. Datasets hold associations
// to tags; removing a dataset never removes the tag itself.
type Tag struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
