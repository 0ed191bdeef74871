package tag

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the contract for tag storage.
type Repository interface {
	// GetAll returns every tag, ordered by name.
	GetAll(ctx context.Context) ([]Tag, error)
	// GetByIDs returns the tags whose ids resolve. Unknown ids are simply
	// absent from the result, they do not cause an error.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Tag, error)
	// Insert stores a new tag and returns its id.
	Insert(ctx context.Context, t Tag) (uuid.UUID, error)
}
