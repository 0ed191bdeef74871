// Package pagination holds the page window value object and the generic
// paginated result envelope shared by every listing query.
package pagination

const (
	DefaultSize = 10
	MaxSize     = 1000
	MaxNumber   = 10_000
)

// Page is an immutable description of the requested window. Use NewPage so
// that the bounds (number >= 1, 1 <= size <= MaxSize) always hold.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps out-of-range values instead of erroring: a malformed page
// parameter degrades to the first page with the default size.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if number > MaxNumber {
		number = MaxNumber
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Page{Number: number, Size: size}
}

// Limit is the window size passed to the storage engine.
func (p Page) Limit() int {
	return p.Size
}

// Offset is the number of rows skipped before the window starts.
func (p Page) Offset() int {
	return p.Size * (p.Number - 1)
}

// Pagination is one page of results plus the totals needed by clients to
// render a pager.
type Pagination[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"total_items"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// New builds a Pagination. TotalPages is always derived here from the other
// two fields (ceil division) and is never stored independently.
func New[T any](items []T, totalItems, pageSize int) Pagination[T] {
	if items == nil {
		items = []T{}
	}
	return Pagination[T]{
		Items:      items,
		TotalItems: totalItems,
		PageSize:   pageSize,
		TotalPages: (totalItems + pageSize - 1) / pageSize,
	}
}
