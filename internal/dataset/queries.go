package dataset

import (
	"github.com/google/uuid"

	"datacatalog/internal/pagination"
)

// GetAllDatasets lists datasets matching the facet spec, newest first.
type GetAllDatasets struct {
	Page pagination.Page
	Spec Spec
}

// SearchDatasets is the same listing engine with the full-text predicate
// activated: results are ranked by relevance and optionally highlighted.
type SearchDatasets struct {
	Q         string
	Highlight bool
	Page      pagination.Page
	Spec      Spec
}

// GetDatasetByID returns a single dataset view.
type GetDatasetByID struct {
	ID uuid.UUID
}

// GetDatasetFilters returns the per-facet value sets used to populate
// client-side facet pickers.
type GetDatasetFilters struct{}
