package tag

import (
	"context"

	"github.com/google/uuid"

	"datacatalog/internal/bus"
)

// GetAllTags returns every tag known to the catalog.
type GetAllTags struct{}

// CreateTag registers a new tag and returns its id.
type CreateTag struct {
	Name string
}

type Handlers struct {
	tags Repository
}

func NewHandlers(tags Repository) *Handlers {
	return &Handlers{tags: tags}
}

func (h *Handlers) GetAllTags(ctx context.Context, _ GetAllTags) ([]Tag, error) {
	return h.tags.GetAll(ctx)
}

func (h *Handlers) CreateTag(ctx context.Context, cmd CreateTag) (uuid.UUID, error) {
	return h.tags.Insert(ctx, Tag{ID: uuid.New(), Name: cmd.Name})
}

// Module wires the tag handlers into the bus.
type Module struct {
	handlers *Handlers
}

func NewModule(tags Repository) *Module {
	return &Module{handlers: NewHandlers(tags)}
}

func (m *Module) Register(b *bus.Bus) error {
	if err := bus.Register(b, m.handlers.GetAllTags); err != nil {
		return err
	}
	return bus.Register(b, m.handlers.CreateTag)
}
