package dataset

import (
	"datacatalog/internal/bus"
	"datacatalog/internal/tag"
)

// Module wires the dataset command and query handlers into the bus.
type Module struct {
	handlers *Handlers
}

func NewModule(datasets Repository, tags tag.Repository) *Module {
	return &Module{handlers: NewHandlers(datasets, tags)}
}

func (m *Module) Register(b *bus.Bus) error {
	if err := bus.Register(b, m.handlers.CreateDataset); err != nil {
		return err
	}
	if err := bus.Register(b, m.handlers.UpdateDataset); err != nil {
		return err
	}
	if err := bus.Register(b, m.handlers.DeleteDataset); err != nil {
		return err
	}
	if err := bus.Register(b, m.handlers.GetAllDatasets); err != nil {
		return err
	}
	if err := bus.Register(b, m.handlers.SearchDatasets); err != nil {
		return err
	}
	if err := bus.Register(b, m.handlers.GetDatasetByID); err != nil {
		return err
	}
	return bus.Register(b, m.handlers.GetDatasetFilters)
}
