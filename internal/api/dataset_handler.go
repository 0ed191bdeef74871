package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"datacatalog/internal/bus"
	"datacatalog/internal/dataset"
	"datacatalog/internal/httpx"
	"datacatalog/internal/pagination"
)

type DatasetHandler struct {
	bus *bus.Bus
}

func NewDatasetHandler(b *bus.Bus) *DatasetHandler {
	return &DatasetHandler{bus: b}
}

// datasetPayload is the full create/update body. PUT semantics: every field
// must be supplied, none are optional-by-omission.
type datasetPayload struct {
	Title                string     `json:"title" validate:"required"`
	Description          string     `json:"description" validate:"required"`
	Service              string     `json:"service" validate:"required"`
	GeographicalCoverage string     `json:"geographical_coverage" validate:"required"`
	Formats              []string   `json:"formats" validate:"required,min=1"`
	TechnicalSource      *string    `json:"technical_source"`
	ProducerEmail        *string    `json:"producer_email" validate:"omitempty,email"`
	ContactEmails        []string   `json:"contact_emails" validate:"required,min=1,dive,email"`
	UpdateFrequency      *string    `json:"update_frequency"`
	LastUpdatedAt        *time.Time `json:"last_updated_at"`
	PublishedURL         *string    `json:"published_url" validate:"omitempty,url"`
	License              *string    `json:"license"`
	TagIDs               []string   `json:"tag_ids"`
}

// List handles GET /datasets. With a q parameter it becomes a ranked search;
// facet parameters may repeat and compose conjunctively across facets.
func (h *DatasetHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	pageNumber, _ := strconv.Atoi(query.Get("page_number"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	page := pagination.NewPage(pageNumber, pageSize)

	spec, detail := specFromQuery(query)
	if detail != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid filter value", []httpx.ErrorDetail{*detail})
		return
	}

	var msg bus.Message
	if query.Has("q") {
		msg = dataset.SearchDatasets{
			Q:         query.Get("q"),
			Highlight: query.Get("highlight") == "true",
			Page:      page,
			Spec:      spec,
		}
	} else {
		msg = dataset.GetAllDatasets{Page: page, Spec: spec}
	}

	result, err := bus.Execute[pagination.Pagination[dataset.View]](r.Context(), h.bus, msg)
	if err != nil {
		log.Error().Err(err).Msg("list datasets")
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, result, nil)
}

// GetByID handles GET /datasets/{id}
func (h *DatasetHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := datasetID(w, r)
	if !ok {
		return
	}

	view, err := bus.Execute[dataset.View](r.Context(), h.bus, dataset.GetDatasetByID{ID: id})
	if err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Dataset not found", nil)
			return
		}
		log.Error().Err(err).Str("id", id.String()).Msg("get dataset")
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, view, nil)
}

// Create handles POST /datasets
func (h *DatasetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload datasetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	if details := validateStruct(payload); details != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	fields, detail := payloadFields(payload)
	if detail != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", []httpx.ErrorDetail{*detail})
		return
	}

	cmd := dataset.CreateDataset{
		Title:                payload.Title,
		Description:          payload.Description,
		Service:              payload.Service,
		GeographicalCoverage: fields.coverage,
		Formats:              fields.formats,
		TechnicalSource:      payload.TechnicalSource,
		ProducerEmail:        payload.ProducerEmail,
		ContactEmails:        payload.ContactEmails,
		UpdateFrequency:      fields.frequency,
		LastUpdatedAt:        payload.LastUpdatedAt,
		PublishedURL:         payload.PublishedURL,
		License:              payload.License,
		TagIDs:               fields.tagIDs,
	}

	id, err := bus.Execute[uuid.UUID](r.Context(), h.bus, cmd)
	if err != nil {
		log.Error().Err(err).Msg("create dataset")
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	view, err := bus.Execute[dataset.View](r.Context(), h.bus, dataset.GetDatasetByID{ID: id})
	if err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("read back created dataset")
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessCreated(w, view)
}

// Update handles PUT /datasets/{id}
func (h *DatasetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := datasetID(w, r)
	if !ok {
		return
	}

	var payload datasetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	if details := validateStruct(payload); details != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	fields, detail := payloadFields(payload)
	if detail != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", []httpx.ErrorDetail{*detail})
		return
	}

	cmd := dataset.UpdateDataset{
		ID:                   id,
		Title:                payload.Title,
		Description:          payload.Description,
		Service:              payload.Service,
		GeographicalCoverage: fields.coverage,
		Formats:              fields.formats,
		TechnicalSource:      payload.TechnicalSource,
		ProducerEmail:        payload.ProducerEmail,
		ContactEmails:        payload.ContactEmails,
		UpdateFrequency:      fields.frequency,
		LastUpdatedAt:        payload.LastUpdatedAt,
		PublishedURL:         payload.PublishedURL,
		License:              payload.License,
		TagIDs:               fields.tagIDs,
	}

	if _, err := h.bus.Execute(r.Context(), cmd); err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Dataset not found", nil)
			return
		}
		log.Error().Err(err).Str("id", id.String()).Msg("update dataset")
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	view, err := bus.Execute[dataset.View](r.Context(), h.bus, dataset.GetDatasetByID{ID: id})
	if err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("read back updated dataset")
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, view, nil)
}

// Delete handles DELETE /datasets/{id}. Always 204: deleting an id that no
// longer exists is a success, which keeps client retries safe.
func (h *DatasetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := datasetID(w, r)
	if !ok {
		return
	}

	if _, err := h.bus.Execute(r.Context(), dataset.DeleteDataset{ID: id}); err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("delete dataset")
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessNoContent(w)
}

// Filters handles GET /datasets/filters
func (h *DatasetHandler) Filters(w http.ResponseWriter, r *http.Request) {
	view, err := bus.Execute[dataset.FiltersView](r.Context(), h.bus, dataset.GetDatasetFilters{})
	if err != nil {
		log.Error().Err(err).Msg("get dataset filters")
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, view, nil)
}

func datasetID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid dataset id", nil)
		return uuid.Nil, false
	}
	return id, true
}
