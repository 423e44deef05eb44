package query

import "errors"

// DefaultPageSize is the interactive dashboard's fixed page size.
const DefaultPageSize = 10

// MaxVisiblePages bounds the sliding window of page buttons.
const MaxVisiblePages = 5

// ErrPageOutOfRange is returned by ValidatePage for pages outside 1..PageCount.
var ErrPageOutOfRange = errors.New("page out of range")

// PageCount is ceil(total/size); zero for empty listings or non-positive sizes.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Page returns items [(page-1)*size, page*size) clamped to the slice. Pages
// below 1 or past the last page yield an empty, non-nil slice.
func Page[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 || page > PageCount(len(items), size) {
		return []T{}
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// ValidatePage rejects pages outside 1..PageCount. Page 1 is always accepted
// so an empty listing still has a page to show.
func ValidatePage(page, total, size int) error {
	if page == 1 {
		return nil
	}
	if page < 1 || page > PageCount(total, size) {
		return ErrPageOutOfRange
	}
	return nil
}

// Pagination holds everything a client needs to draw pagination controls.
type Pagination struct {
	Page             int
	PageSize         int
	TotalItems       int
	TotalPages       int
	HasPrev          bool
	HasNext          bool
	Pages            []int
	ShowFirst        bool
	LeadingEllipsis  bool
	ShowLast         bool
	TrailingEllipsis bool
	StartItem        int
	EndItem          int
}

// Window derives pagination controls from the total and current page: a
// sliding window of at most MaxVisiblePages centred on current, shifted back
// when it would run past the last page, plus first/last shortcuts and
// ellipses when the window does not reach them.
func Window(total, current, size int) Pagination {
	if size < 1 {
		size = DefaultPageSize
	}
	pages := PageCount(total, size)
	p := Pagination{
		Page:       current,
		PageSize:   size,
		TotalItems: total,
		TotalPages: pages,
		Pages:      []int{},
	}
	if total > 0 {
		p.StartItem = (current-1)*size + 1
		p.EndItem = min(current*size, total)
	}
	if pages <= 1 {
		if pages == 1 {
			p.Pages = []int{1}
		}
		return p
	}

	p.HasPrev = current > 1
	p.HasNext = current < pages

	start := max(1, current-MaxVisiblePages/2)
	end := min(pages, start+MaxVisiblePages-1)
	if end-start+1 < MaxVisiblePages {
		start = max(1, end-MaxVisiblePages+1)
	}
	for i := start; i <= end; i++ {
		p.Pages = append(p.Pages, i)
	}

	if start > 1 {
		p.ShowFirst = true
		p.LeadingEllipsis = start > 2
	}
	if end < pages {
		p.ShowLast = true
		p.TrailingEllipsis = end < pages-1
	}
	return p
}
