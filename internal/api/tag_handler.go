package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"datacatalog/internal/bus"
	"datacatalog/internal/httpx"
	"datacatalog/internal/tag"
)

type TagHandler struct {
	bus *bus.Bus
}

func NewTagHandler(b *bus.Bus) *TagHandler {
	return &TagHandler{bus: b}
}

type tagPayload struct {
	Name string `json:"name" validate:"required"`
}

// List handles GET /tags
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := bus.Execute[[]tag.Tag](r.Context(), h.bus, tag.GetAllTags{})
	if err != nil {
		log.Error().Err(err).Msg("list tags")
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if tags == nil {
		tags = []tag.Tag{}
	}

	httpx.JSONSuccess(w, tags, nil)
}

// Create handles POST /tags
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload tagPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	if details := validateStruct(payload); details != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	id, err := bus.Execute[uuid.UUID](r.Context(), h.bus, tag.CreateTag{Name: payload.Name})
	if err != nil {
		log.Error().Err(err).Msg("create tag")
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessCreated(w, tag.Tag{ID: id, Name: payload.Name})
}
