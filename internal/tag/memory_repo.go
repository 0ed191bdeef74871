package tag

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Repository used by tests and local tooling.
type MemoryRepo struct {
	mu   sync.Mutex
	tags map[uuid.UUID]Tag
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{tags: make(map[uuid.UUID]Tag)}
}

func (r *MemoryRepo) GetAll(_ context.Context) ([]Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Tag, 0, len(r.tags))
	for _, t := range r.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Tag
	for _, id := range ids {
		if t, ok := r.tags[id]; ok {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepo) Insert(_ context.Context, t Tag) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tags[t.ID] = t
	return t.ID, nil
}
