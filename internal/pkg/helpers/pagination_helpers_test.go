package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateSliceIndices(t *testing.T) {
	tests := []struct {
		name                 string
		page, size, total    int
		wantStart, wantEnd   int
	}{
		{"first page", 1, 5, 12, 0, 5},
		{"middle page", 2, 5, 12, 5, 10},
		{"partial last page", 3, 5, 12, 10, 12},
		{"page past the end", 4, 5, 12, 12, 12},
		{"empty set", 1, 5, 0, 0, 0},
		{"invalid page falls back to first", 0, 5, 12, 0, 5},
		{"invalid size falls back to default", 1, 0, 30, 0, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := CalculateSliceIndices(tt.page, tt.size, tt.total)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(25, 2, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 10, info.PageSize)
	assert.Equal(t, 25, info.TotalItems)

	// Current page never exceeds the last page.
	info = NewPaginationInfo(25, 99, 10)
	assert.Equal(t, 3, info.CurrentPage)

	// Empty sets still report a single page when on page 1.
	info = NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.TotalPages)
	assert.Equal(t, 0, info.TotalItems)
}
