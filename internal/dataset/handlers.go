package dataset

import (
	"context"

	"github.com/google/uuid"

	"datacatalog/internal/pagination"
	"datacatalog/internal/tag"
)

// Handlers holds the use-case handlers routed through the bus. Each handler
// is stateless; every invocation runs against its own storage transaction.
type Handlers struct {
	datasets Repository
	tags     tag.Repository
}

func NewHandlers(datasets Repository, tags tag.Repository) *Handlers {
	return &Handlers{datasets: datasets, tags: tags}
}

// CreateDataset allocates ids for the dataset and its catalog record,
// resolves the command's tag ids against existing tags (unresolved ids are
// dropped, not an error) and stores everything atomically.
func (h *Handlers) CreateDataset(ctx context.Context, cmd CreateDataset) (uuid.UUID, error) {
	tags, err := h.tags.GetByIDs(ctx, cmd.TagIDs)
	if err != nil {
		return uuid.Nil, err
	}

	d := Dataset{
		ID:                   uuid.New(),
		CatalogRecord:        CatalogRecord{ID: uuid.New()},
		Title:                cmd.Title,
		Description:          cmd.Description,
		Service:              cmd.Service,
		GeographicalCoverage: cmd.GeographicalCoverage,
		Formats:              cmd.Formats,
		TechnicalSource:      cmd.TechnicalSource,
		ProducerEmail:        cmd.ProducerEmail,
		ContactEmails:        cmd.ContactEmails,
		UpdateFrequency:      cmd.UpdateFrequency,
		LastUpdatedAt:        cmd.LastUpdatedAt,
		PublishedURL:         cmd.PublishedURL,
		License:              cmd.License,
		Tags:                 tags,
	}

	return h.datasets.Insert(ctx, d)
}

// UpdateDataset overwrites the stored dataset wholesale. ErrNotFound
// propagates when the id is unknown.
func (h *Handlers) UpdateDataset(ctx context.Context, cmd UpdateDataset) (struct{}, error) {
	tags, err := h.tags.GetByIDs(ctx, cmd.TagIDs)
	if err != nil {
		return struct{}{}, err
	}

	d := Dataset{
		ID:                   cmd.ID,
		Title:                cmd.Title,
		Description:          cmd.Description,
		Service:              cmd.Service,
		GeographicalCoverage: cmd.GeographicalCoverage,
		Formats:              cmd.Formats,
		TechnicalSource:      cmd.TechnicalSource,
		ProducerEmail:        cmd.ProducerEmail,
		ContactEmails:        cmd.ContactEmails,
		UpdateFrequency:      cmd.UpdateFrequency,
		LastUpdatedAt:        cmd.LastUpdatedAt,
		PublishedURL:         cmd.PublishedURL,
		License:              cmd.License,
		Tags:                 tags,
	}

	return struct{}{}, h.datasets.Update(ctx, d)
}

func (h *Handlers) DeleteDataset(ctx context.Context, cmd DeleteDataset) (struct{}, error) {
	return struct{}{}, h.datasets.Delete(ctx, cmd.ID)
}

func (h *Handlers) GetAllDatasets(ctx context.Context, q GetAllDatasets) (pagination.Pagination[View], error) {
	spec := q.Spec
	// The text predicate belongs to SearchDatasets only.
	spec.Search = nil

	items, total, err := h.datasets.GetAll(ctx, q.Page, spec)
	if err != nil {
		return pagination.Pagination[View]{}, err
	}
	return pagination.New(items, total, q.Page.Size), nil
}

func (h *Handlers) SearchDatasets(ctx context.Context, q SearchDatasets) (pagination.Pagination[View], error) {
	spec := q.Spec
	spec.Search = &SearchSpec{Term: q.Q, Highlight: q.Highlight}

	items, total, err := h.datasets.GetAll(ctx, q.Page, spec)
	if err != nil {
		return pagination.Pagination[View]{}, err
	}
	return pagination.New(items, total, q.Page.Size), nil
}

func (h *Handlers) GetDatasetByID(ctx context.Context, q GetDatasetByID) (View, error) {
	d, err := h.datasets.GetByID(ctx, q.ID)
	if err != nil {
		return View{}, err
	}
	return View{Dataset: d}, nil
}

func (h *Handlers) GetDatasetFilters(ctx context.Context, _ GetDatasetFilters) (FiltersView, error) {
	services, err := h.datasets.GetServiceSet(ctx)
	if err != nil {
		return FiltersView{}, err
	}
	technicalSources, err := h.datasets.GetTechnicalSourceSet(ctx)
	if err != nil {
		return FiltersView{}, err
	}
	licenses, err := h.datasets.GetLicenseSet(ctx)
	if err != nil {
		return FiltersView{}, err
	}
	tags, err := h.tags.GetAll(ctx)
	if err != nil {
		return FiltersView{}, err
	}

	tagIDs := make([]uuid.UUID, len(tags))
	for i, t := range tags {
		tagIDs[i] = t.ID
	}

	if services == nil {
		services = []string{}
	}
	if technicalSources == nil {
		technicalSources = []string{}
	}
	if licenses == nil {
		licenses = []string{}
	}

	return FiltersView{
		GeographicalCoverage: AllGeographicalCoverages(),
		Service:              services,
		Format:               AllDataFormats(),
		TechnicalSource:      technicalSources,
		License:              licenses,
		TagID:                tagIDs,
	}, nil
}
