package dataset

import "github.com/google/uuid"

// SearchSpec activates the full-text predicate. An empty term is a valid
// search that matches no rows; the absence of a SearchSpec means "no text
// constraint at all".
type SearchSpec struct {
	Term      string
	Highlight bool
}

// Spec describes what to filter a dataset listing by. A nil/empty facet
// imposes no constraint. Facets compose conjunctively with each other; the
// values within one facet compose disjunctively (any-of).
type Spec struct {
	Search               *SearchSpec
	GeographicalCoverage []GeographicalCoverage
	Service              []string
	Format               []DataFormat
	TechnicalSource      []string
	TagID                []uuid.UUID
	License              []string
}
