package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name                   string
		current, total, radius int
		want                   []int
	}{
		{"no pages", 1, 0, 2, []int{}},
		{"single page", 1, 1, 2, []int{1}},
		{"start", 1, 10, 2, []int{1, 2, 3}},
		{"middle", 5, 10, 2, []int{3, 4, 5, 6, 7}},
		{"end", 10, 10, 2, []int{8, 9, 10}},
		{"current beyond total", 14, 10, 1, []int{9, 10}},
		{"current below one", -3, 4, 1, []int{1, 2}},
		{"zero radius", 3, 5, 0, []int{3}},
		{"negative radius", 3, 5, -1, []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageWindow(tt.current, tt.total, tt.radius))
		})
	}
}

func TestPaginate(t *testing.T) {
	req := NewRequest(2, 6)
	assert.Equal(t, 6, req.Offset())

	page := Paginate([]string{"g", "h", "i", "j", "k", "l"}, req, 14, 2)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, []int{1, 2, 3}, page.Window)
	assert.True(t, page.HasPrev)
	assert.True(t, page.HasNext)

	empty := Paginate[string](nil, NewRequest(0, 0), 0, 2)
	assert.Equal(t, 1, empty.Number)
	assert.Equal(t, 1, empty.Size)
	assert.Empty(t, empty.Window)
	assert.NotNil(t, empty.Items)
	assert.False(t, empty.HasPrev)
	assert.False(t, empty.HasNext)
}

func TestRequest_InRange(t *testing.T) {
	tests := []struct {
		name   string
		number int
		total  int64
		want   bool
	}{
		{"first page of nothing", 1, 0, true},
		{"last page", 2, 8, true},
		{"past the last page", 3, 8, false},
		{"second page of nothing", 2, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRequest(tt.number, 6).InRange(tt.total))
		})
	}
}

func TestMap(t *testing.T) {
	page := Paginate([]int{1, 2}, NewRequest(1, 2), 3, 1)
	doubled := Map(page, func(n int) int { return n * 2 })
	assert.Equal(t, []int{2, 4}, doubled.Items)
	assert.Equal(t, page.Window, doubled.Window)
	assert.Equal(t, page.TotalItems, doubled.TotalItems)
}

func TestGrid(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2, 3, 4}, {5, 6}}, Grid([]int{1, 2, 3, 4, 5, 6}, 4))
	assert.Equal(t, [][]int{{1, 2}, {3, 4}}, Grid([]int{1, 2, 3, 4}, 2))
	assert.Empty(t, Grid([]int{}, 4))
	assert.Equal(t, [][]int{{1}, {2}}, Grid([]int{1, 2}, 0))
}
