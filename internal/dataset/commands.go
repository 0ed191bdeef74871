package dataset

import (
	"time"

	"github.com/google/uuid"
)

// CreateDataset creates a dataset together with its catalog record and its
// tag/format associations, and returns the new id.
type CreateDataset struct {
	Title                string
	Description          string
	Service              string
	GeographicalCoverage GeographicalCoverage
	Formats              []DataFormat
	TechnicalSource      *string
	ProducerEmail        *string
	ContactEmails        []string
	UpdateFrequency      *UpdateFrequency
	LastUpdatedAt        *time.Time
	PublishedURL         *string
	License              *string
	TagIDs               []uuid.UUID
}

// UpdateDataset replaces every scalar field and both association sets with
// exactly what the command carries (PUT semantics, not a merge).
type UpdateDataset struct {
	ID                   uuid.UUID
	Title                string
	Description          string
	Service              string
	GeographicalCoverage GeographicalCoverage
	Formats              []DataFormat
	TechnicalSource      *string
	ProducerEmail        *string
	ContactEmails        []string
	UpdateFrequency      *UpdateFrequency
	LastUpdatedAt        *time.Time
	PublishedURL         *string
	License              *string
	TagIDs               []uuid.UUID
}

// DeleteDataset removes a dataset. Deleting an unknown id succeeds silently;
// retrying a delete is always safe.
type DeleteDataset struct {
	ID uuid.UUID
}
