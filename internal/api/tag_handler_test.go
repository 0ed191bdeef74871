package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datacatalog/internal/dataset"
	"datacatalog/internal/tag"
)

func TestCreateTagEndpoint(t *testing.T) {
	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/tags/", map[string]any{"name": "mobilité"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created tag.Tag
	decodeData(t, rec, &created)
	assert.Equal(t, "mobilité", created.Name)
	assert.NotEmpty(t, created.ID)

	rec = doJSON(t, handler, http.MethodGet, "/tags/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var all []tag.Tag
	decodeData(t, rec, &all)
	assert.Equal(t, []tag.Tag{created}, all)
}

func TestListTagsEmpty(t *testing.T) {
	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/tags/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var all []tag.Tag
	decodeData(t, rec, &all)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestCreateTagValidation(t *testing.T) {
	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/tags/", map[string]any{"name": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/tags/", bytes.NewBufferString("not json"))
	out := httptest.NewRecorder()
	handler.ServeHTTP(out, req)
	assert.Equal(t, http.StatusBadRequest, out.Code)
}

func TestCreateDatasetWithTags(t *testing.T) {
	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/tags/", map[string]any{"name": "adresse"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created tag.Tag
	decodeData(t, rec, &created)

	payload := validPayload()
	// One resolvable id plus one unknown: the unknown id is dropped silently.
	payload["tag_ids"] = []string{created.ID.String(), "9f0d7a62-64a5-4bc7-8c12-66a742a6b6aa"}

	view := createDataset(t, handler, payload)
	assert.Equal(t, []tag.Tag{created}, view.Tags)

	// An unparseable tag id is a validation error, not a silent drop.
	payload = validPayload()
	payload["tag_ids"] = []string{"not-a-uuid"}
	rec = doJSON(t, handler, http.MethodPost, "/datasets/", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListDatasetsByTagFacet(t *testing.T) {
	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/tags/", map[string]any{"name": "eau"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var eau tag.Tag
	decodeData(t, rec, &eau)

	tagged := validPayload()
	tagged["title"] = "Qualité de l'eau"
	tagged["tag_ids"] = []string{eau.ID.String()}
	createDataset(t, handler, tagged)
	createDataset(t, handler, validPayload())

	rec = doJSON(t, handler, http.MethodGet, "/datasets/?tag_id="+eau.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Items      []dataset.View `json:"items"`
		TotalItems int            `json:"total_items"`
	}
	decodeData(t, rec, &result)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Qualité de l'eau", result.Items[0].Title)
}
