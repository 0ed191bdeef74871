package dataset

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"datacatalog/internal/pagination"
	"datacatalog/internal/tag"
)

// MemoryRepo is an in-memory Repository used by tests and local tooling. It
// mirrors the storage contract: same-snapshot count+page, idempotent delete,
// full-replace update, newest-first default ordering. Text matching is plain
// case-insensitive substring matching, not stemmed lexemes.
type MemoryRepo struct {
	mu       sync.Mutex
	datasets map[uuid.UUID]Dataset
	seq      map[uuid.UUID]int
	nextSeq  int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		datasets: make(map[uuid.UUID]Dataset),
		seq:      make(map[uuid.UUID]int),
	}
}

func (r *MemoryRepo) GetAll(_ context.Context, page pagination.Page, spec Spec) ([]View, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []Dataset
	for _, d := range r.datasets {
		if r.matches(d, spec) {
			matched = append(matched, d)
		}
	}

	if spec.Search != nil {
		terms := searchTerms(spec.Search.Term)
		sort.Slice(matched, func(i, j int) bool {
			ri, rj := rank(matched[i], terms), rank(matched[j], terms)
			if ri != rj {
				return ri > rj
			}
			return r.seq[matched[i].ID] > r.seq[matched[j].ID]
		})
	} else {
		sort.Slice(matched, func(i, j int) bool {
			return r.seq[matched[i].ID] > r.seq[matched[j].ID]
		})
	}

	total := len(matched)

	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit()
	if end > total {
		end = total
	}

	out := make([]View, 0, end-start)
	for _, d := range matched[start:end] {
		v := View{Dataset: d}
		if spec.Search != nil && spec.Search.Highlight {
			v.Headlines = highlight(d, searchTerms(spec.Search.Term))
		}
		out = append(out, v)
	}
	return out, total, nil
}

func (r *MemoryRepo) GetByID(_ context.Context, id uuid.UUID) (Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.datasets[id]
	if !ok {
		return Dataset{}, ErrNotFound
	}
	return d, nil
}

func (r *MemoryRepo) Insert(_ context.Context, d Dataset) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// created_at is owned by the storage layer, never by the caller.
	d.CatalogRecord.CreatedAt = time.Now()
	r.nextSeq++
	r.seq[d.ID] = r.nextSeq
	r.datasets[d.ID] = d
	return d.ID, nil
}

func (r *MemoryRepo) Update(_ context.Context, d Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.datasets[d.ID]
	if !ok {
		return ErrNotFound
	}
	// Full replace of scalars and associations; the catalog record survives.
	d.CatalogRecord = existing.CatalogRecord
	r.datasets[d.ID] = d
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.datasets, id)
	delete(r.seq, id)
	return nil
}

func (r *MemoryRepo) GetServiceSet(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.distinct(func(d Dataset) *string { s := d.Service; return &s }), nil
}

func (r *MemoryRepo) GetTechnicalSourceSet(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.distinct(func(d Dataset) *string { return d.TechnicalSource }), nil
}

func (r *MemoryRepo) GetLicenseSet(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.distinct(func(d Dataset) *string { return d.License }), nil
}

func (r *MemoryRepo) distinct(field func(Dataset) *string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range r.datasets {
		v := field(d)
		if v == nil || seen[*v] {
			continue
		}
		seen[*v] = true
		out = append(out, *v)
	}
	sort.Strings(out)
	return out
}

func (r *MemoryRepo) matches(d Dataset, spec Spec) bool {
	if len(spec.GeographicalCoverage) > 0 && !containsCoverage(spec.GeographicalCoverage, d.GeographicalCoverage) {
		return false
	}
	if len(spec.Service) > 0 && !containsString(spec.Service, d.Service) {
		return false
	}
	if len(spec.TechnicalSource) > 0 && (d.TechnicalSource == nil || !containsString(spec.TechnicalSource, *d.TechnicalSource)) {
		return false
	}
	if len(spec.License) > 0 && (d.License == nil || !containsString(spec.License, *d.License)) {
		return false
	}
	if len(spec.Format) > 0 && !intersectsFormats(spec.Format, d.Formats) {
		return false
	}
	if len(spec.TagID) > 0 && !intersectsTags(spec.TagID, d.Tags) {
		return false
	}
	if spec.Search != nil {
		terms := searchTerms(spec.Search.Term)
		if len(terms) == 0 {
			// An empty search matches no rows.
			return false
		}
		doc := strings.ToLower(d.Title + " " + d.Description)
		for _, term := range terms {
			if !strings.Contains(doc, term) {
				return false
			}
		}
	}
	return true
}

func searchTerms(term string) []string {
	return strings.Fields(strings.ToLower(term))
}

func rank(d Dataset, terms []string) int {
	doc := strings.ToLower(d.Title + " " + d.Description)
	score := 0
	for _, term := range terms {
		score += strings.Count(doc, term)
	}
	return score
}

func highlight(d Dataset, terms []string) *Headlines {
	h := &Headlines{Title: markTerms(d.Title, terms)}
	marked := markTerms(d.Description, terms)
	if strings.Contains(marked, "<mark>") {
		h.Description = &marked
	}
	return h
}

func markTerms(text string, terms []string) string {
	lower := strings.ToLower(text)
	for _, term := range terms {
		var b strings.Builder
		pos := 0
		for {
			i := strings.Index(lower[pos:], term)
			if i < 0 {
				b.WriteString(text[pos:])
				break
			}
			start := pos + i
			end := start + len(term)
			b.WriteString(text[pos:start])
			b.WriteString("<mark>")
			b.WriteString(text[start:end])
			b.WriteString("</mark>")
			pos = end
		}
		text = b.String()
		lower = strings.ToLower(text)
	}
	return text
}

func containsString(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func containsCoverage(values []GeographicalCoverage, v GeographicalCoverage) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func intersectsFormats(wanted, have []DataFormat) bool {
	for _, w := range wanted {
		for _, h := range have {
			if w == h {
				return true
			}
		}
	}
	return false
}

func intersectsTags(wanted []uuid.UUID, have []tag.Tag) bool {
	for _, w := range wanted {
		for _, h := range have {
			if w == h.ID {
				return true
			}
		}
	}
	return false
}
