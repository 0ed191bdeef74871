// Package dataset implements the catalog's core: dataset entities, the
// listing/search engine and the atomic multi-entity write path.
package dataset

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"datacatalog/internal/tag"
)

// ErrNotFound is returned when a dataset is not found.
var ErrNotFound = errors.New("dataset not found")

// DataFormat is a fixed, pre-seeded enumeration. Datasets hold a non-empty
// subset; the rows themselves are not user-creatable.
type DataFormat string

const (
	FormatFileTabular DataFormat = "file_tabular"
	FormatFileGIS     DataFormat = "file_gis"
	FormatAPI         DataFormat = "api"
	FormatDatabase    DataFormat = "database"
	FormatWebsite     DataFormat = "website"
	FormatOther       DataFormat = "other"
)

func AllDataFormats() []DataFormat {
	return []DataFormat{
		FormatFileTabular,
		FormatFileGIS,
		FormatAPI,
		FormatDatabase,
		FormatWebsite,
		FormatOther,
	}
}

// ParseDataFormat validates a raw format value.
func ParseDataFormat(s string) (DataFormat, error) {
	for _, f := range AllDataFormats() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown data format %q", s)
}

// GeographicalCoverage is the enumerated territory a dataset covers.
type GeographicalCoverage string

const (
	CoverageMunicipality          GeographicalCoverage = "municipality"
	CoverageEPCI                  GeographicalCoverage = "epci"
	CoverageDepartment            GeographicalCoverage = "department"
	CoverageRegion                GeographicalCoverage = "region"
	CoverageNational              GeographicalCoverage = "national"
	CoverageNationalFullTerritory GeographicalCoverage = "national_full_territory"
	CoverageEurope                GeographicalCoverage = "europe"
	CoverageWorld                 GeographicalCoverage = "world"
)

func AllGeographicalCoverages() []GeographicalCoverage {
	return []GeographicalCoverage{
		CoverageMunicipality,
		CoverageEPCI,
		CoverageDepartment,
		CoverageRegion,
		CoverageNational,
		CoverageNationalFullTerritory,
		CoverageEurope,
		CoverageWorld,
	}
}

func ParseGeographicalCoverage(s string) (GeographicalCoverage, error) {
	for _, c := range AllGeographicalCoverages() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown geographical coverage %q", s)
}

// UpdateFrequency is how often a dataset is refreshed by its producer.
type UpdateFrequency string

const (
	FrequencyNever    UpdateFrequency = "never"
	FrequencyRealtime UpdateFrequency = "realtime"
	FrequencyDaily    UpdateFrequency = "daily"
	FrequencyWeekly   UpdateFrequency = "weekly"
	FrequencyMonthly  UpdateFrequency = "monthly"
	FrequencyYearly   UpdateFrequency = "yearly"
)

func ParseUpdateFrequency(s string) (UpdateFrequency, error) {
	for _, f := range []UpdateFrequency{
		FrequencyNever, FrequencyRealtime, FrequencyDaily,
		FrequencyWeekly, FrequencyMonthly, FrequencyYearly,
	} {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown update frequency %q", s)
}

// CatalogRecord is owned 1:1 by a dataset and never outlives it. CreatedAt is
// assigned by the database at insert time, never client-supplied.
type CatalogRecord struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Dataset is the catalog entry for one dataset. Formats and ContactEmails are
// never empty once created.
type Dataset struct {
	ID                   uuid.UUID            `json:"id"`
	CatalogRecord        CatalogRecord        `json:"catalog_record"`
	Title                string               `json:"title"`
	Description          string               `json:"description"`
	Service              string               `json:"service"`
	GeographicalCoverage GeographicalCoverage `json:"geographical_coverage"`
	Formats              []DataFormat         `json:"formats"`
	TechnicalSource      *string              `json:"technical_source"`
	ProducerEmail        *string              `json:"producer_email"`
	ContactEmails        []string             `json:"contact_emails"`
	UpdateFrequency      *UpdateFrequency     `json:"update_frequency"`
	LastUpdatedAt        *time.Time           `json:"last_updated_at"`
	PublishedURL         *string              `json:"published_url"`
	License              *string              `json:"license"`
	Tags                 []tag.Tag            `json:"tags"`
}

// Headlines carries highlighted snippets for a search result. Description is
// nil when only the title matched.
type Headlines struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// View is what listing and get-by-id queries return. Headlines is populated
// only when highlighting was requested on a search.
type View struct {
	Dataset
	Headlines *Headlines `json:"headlines,omitempty"`
}

// FiltersView lists, per facet, the values a client can filter on: the fixed
// enumerations for format and geographical coverage, and the distinct values
// currently present in storage for the rest. Recomputed on every call.
type FiltersView struct {
	GeographicalCoverage []GeographicalCoverage `json:"geographical_coverage"`
	Service              []string               `json:"service"`
	Format               []DataFormat           `json:"format"`
	TechnicalSource      []string               `json:"technical_source"`
	License              []string               `json:"license"`
	TagID                []uuid.UUID            `json:"tag_id"`
}
