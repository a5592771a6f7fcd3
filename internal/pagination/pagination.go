package pagination

// PageWindow returns the page numbers within radius of current, clamped to [1, total].
// It returns an empty slice when there are no pages.
func PageWindow(current, total, radius int) []int {
	if total < 1 {
		return []int{}
	}
	if radius < 0 {
		radius = 0
	}
	current = clamp(current, 1, total)

	first := max(1, current-radius)
	last := min(total, current+radius)
	window := make([]int, 0, last-first+1)
	for n := first; n <= last; n++ {
		window = append(window, n)
	}
	return window
}

// Page is one page of a larger ordered result.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Number     int   `json:"number"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	Window     []int `json:"window"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

// Request is a normalized page request.
type Request struct {
	Number int
	Size   int
}

// NewRequest clamps a requested page number and size to sane values.
func NewRequest(number, size int) Request {
	if size < 1 {
		size = 1
	}
	if number < 1 {
		number = 1
	}
	return Request{Number: number, Size: size}
}

// Offset is the number of rows to skip.
func (r Request) Offset() int {
	return (r.Number - 1) * r.Size
}

// InRange reports whether the requested page exists for total items.
// The first page always exists, even when there is nothing to show.
func (r Request) InRange(total int64) bool {
	return r.Number == 1 || r.Number <= TotalPages(total, r.Size)
}

// TotalPages is the page count for total items at size per page.
func TotalPages(total int64, size int) int {
	if total <= 0 || size < 1 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// Paginate assembles a Page from one page of items and the overall count.
func Paginate[T any](items []T, req Request, total int64, radius int) Page[T] {
	pages := TotalPages(total, req.Size)
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Number:     req.Number,
		Size:       req.Size,
		TotalPages: pages,
		TotalItems: total,
		Window:     PageWindow(req.Number, pages, radius),
		HasPrev:    req.Number > 1 && pages > 0,
		HasNext:    req.Number < pages,
	}
}

// Map converts the items of a page, keeping its metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Items))
	for i, item := range p.Items {
		out[i] = fn(item)
	}
	return Page[U]{
		Items:      out,
		Number:     p.Number,
		Size:       p.Size,
		TotalPages: p.TotalPages,
		TotalItems: p.TotalItems,
		Window:     p.Window,
		HasPrev:    p.HasPrev,
		HasNext:    p.HasNext,
	}
}

// Grid lays items out in rows of columns. The last row may be short.
func Grid[T any](items []T, columns int) [][]T {
	if columns < 1 {
		columns = 1
	}
	rows := make([][]T, 0, (len(items)+columns-1)/columns)
	for start := 0; start < len(items); start += columns {
		end := min(start+columns, len(items))
		rows = append(rows, items[start:end:end])
	}
	return rows
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
