package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageClampsBounds(t *testing.T) {
	tests := []struct {
		name       string
		number     int
		size       int
		wantNumber int
		wantSize   int
	}{
		{"valid values pass through", 3, 25, 3, 25},
		{"zero number becomes first page", 0, 10, 1, 10},
		{"negative number becomes first page", -5, 10, 1, 10},
		{"zero size becomes default", 2, 0, 2, DefaultSize},
		{"negative size becomes default", 2, -1, 2, DefaultSize},
		{"oversized size is capped", 1, MaxSize + 1, 1, MaxSize},
		{"oversized number is capped", MaxNumber + 50, 10, MaxNumber, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(tt.number, tt.size)
			assert.Equal(t, tt.wantNumber, p.Number)
			assert.Equal(t, tt.wantSize, p.Size)
		})
	}
}

func TestPageWindow(t *testing.T) {
	p := NewPage(1, 10)
	assert.Equal(t, 10, p.Limit())
	assert.Equal(t, 0, p.Offset())

	p = NewPage(3, 25)
	assert.Equal(t, 25, p.Limit())
	assert.Equal(t, 50, p.Offset())
}

func TestNewTotalPages(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		pageSize   int
		want       int
	}{
		{"empty result has zero pages", 0, 10, 0},
		{"exact multiple", 20, 10, 2},
		{"remainder rounds up", 21, 10, 3},
		{"single partial page", 3, 10, 1},
		{"thirteen items by five", 13, 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New([]int{}, tt.totalItems, tt.pageSize)
			assert.Equal(t, tt.want, p.TotalPages)
			assert.Equal(t, tt.totalItems, p.TotalItems)
			assert.Equal(t, tt.pageSize, p.PageSize)
		})
	}
}

func TestNewNilItemsBecomesEmptySlice(t *testing.T) {
	p := New[string](nil, 0, 10)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
}
