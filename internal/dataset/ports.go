package dataset

import (
	"context"

	"github.com/google/uuid"

	"datacatalog/internal/pagination"
)

// Repository defines the contract for dataset storage.
type Repository interface {
	// GetAll returns one page of datasets matching spec plus the unwindowed
	// match count. Both are computed against the same snapshot.
	GetAll(ctx context.Context, page pagination.Page, spec Spec) ([]View, int, error)
	// GetByID returns ErrNotFound for unknown ids.
	GetByID(ctx context.Context, id uuid.UUID) (Dataset, error)
	// Insert atomically stores the dataset, its catalog record and both
	// association sets. The catalog record's CreatedAt is assigned by the
	// database.
	Insert(ctx context.Context, d Dataset) (uuid.UUID, error)
	// Update atomically replaces every scalar field and both association
	// sets. Returns ErrNotFound for unknown ids.
	Update(ctx context.Context, d Dataset) error
	// Delete removes the dataset, its catalog record and its association
	// rows. Deleting an unknown id succeeds silently.
	Delete(ctx context.Context, id uuid.UUID) error
	// GetServiceSet returns the distinct service values present in storage.
	GetServiceSet(ctx context.Context) ([]string, error)
	// GetTechnicalSourceSet returns the distinct non-null technical sources.
	GetTechnicalSourceSet(ctx context.Context) ([]string, error)
	// GetLicenseSet returns the distinct non-null licenses.
	GetLicenseSet(ctx context.Context) ([]string, error)
}
