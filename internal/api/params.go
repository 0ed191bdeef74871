package api

import (
	"net/url"

	"github.com/google/uuid"

	"datacatalog/internal/dataset"
	"datacatalog/internal/httpx"
)

// specFromQuery builds the listing spec from repeated facet parameters.
// A facet missing from the query imposes no constraint.
func specFromQuery(query url.Values) (dataset.Spec, *httpx.ErrorDetail) {
	var spec dataset.Spec

	for _, raw := range query["geographical_coverage"] {
		c, err := dataset.ParseGeographicalCoverage(raw)
		if err != nil {
			return dataset.Spec{}, &httpx.ErrorDetail{Field: "geographical_coverage", Message: err.Error()}
		}
		spec.GeographicalCoverage = append(spec.GeographicalCoverage, c)
	}

	spec.Service = query["service"]
	spec.TechnicalSource = query["technical_source"]
	spec.License = query["license"]

	for _, raw := range query["format"] {
		f, err := dataset.ParseDataFormat(raw)
		if err != nil {
			return dataset.Spec{}, &httpx.ErrorDetail{Field: "format", Message: err.Error()}
		}
		spec.Format = append(spec.Format, f)
	}

	for _, raw := range query["tag_id"] {
		id, err := uuid.Parse(raw)
		if err != nil {
			return dataset.Spec{}, &httpx.ErrorDetail{Field: "tag_id", Message: "must be a valid UUID"}
		}
		spec.TagID = append(spec.TagID, id)
	}

	return spec, nil
}

// parsedFields carries the payload values that need conversion beyond what
// JSON decoding gives us.
type parsedFields struct {
	coverage  dataset.GeographicalCoverage
	formats   []dataset.DataFormat
	frequency *dataset.UpdateFrequency
	tagIDs    []uuid.UUID
}

func payloadFields(payload datasetPayload) (parsedFields, *httpx.ErrorDetail) {
	var fields parsedFields

	coverage, err := dataset.ParseGeographicalCoverage(payload.GeographicalCoverage)
	if err != nil {
		return parsedFields{}, &httpx.ErrorDetail{Field: "geographical_coverage", Message: err.Error()}
	}
	fields.coverage = coverage

	for _, raw := range payload.Formats {
		f, err := dataset.ParseDataFormat(raw)
		if err != nil {
			return parsedFields{}, &httpx.ErrorDetail{Field: "formats", Message: err.Error()}
		}
		fields.formats = append(fields.formats, f)
	}

	if payload.UpdateFrequency != nil {
		f, err := dataset.ParseUpdateFrequency(*payload.UpdateFrequency)
		if err != nil {
			return parsedFields{}, &httpx.ErrorDetail{Field: "update_frequency", Message: err.Error()}
		}
		fields.frequency = &f
	}

	for _, raw := range payload.TagIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return parsedFields{}, &httpx.ErrorDetail{Field: "tag_ids", Message: "must be valid UUIDs"}
		}
		fields.tagIDs = append(fields.tagIDs, id)
	}

	return fields, nil
}
