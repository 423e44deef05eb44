package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageCount(t *testing.T) {
	assert.Equal(t, 5, PageCount(47, 10))
	assert.Equal(t, 1, PageCount(10, 10))
	assert.Equal(t, 2, PageCount(11, 10))
	assert.Equal(t, 0, PageCount(0, 10))
	assert.Equal(t, 0, PageCount(5, 0))
}

func TestPage_FortySevenItems(t *testing.T) {
	items := make([]int, 47)
	for i := range items {
		items[i] = i
	}

	assert.Len(t, Page(items, 1, DefaultPageSize), 10)
	last := Page(items, 5, DefaultPageSize)
	assert.Equal(t, []int{40, 41, 42, 43, 44, 45, 46}, last)
	assert.Empty(t, Page(items, 6, DefaultPageSize))
	assert.Empty(t, Page(items, 0, DefaultPageSize))
	assert.Empty(t, Page(items, -1, DefaultPageSize))
}

func TestPage_ConcatenationReconstructsList(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 47, 100} {
		items := make([]int, n)
		for i := range items {
			items[i] = i * 3
		}
		var rebuilt []int
		for p := 1; p <= PageCount(n, DefaultPageSize); p++ {
			rebuilt = append(rebuilt, Page(items, p, DefaultPageSize)...)
		}
		if n == 0 {
			assert.Empty(t, rebuilt)
			continue
		}
		assert.Equal(t, items, rebuilt, "n=%d", n)
	}
}

func TestPage_ReturnsCopy(t *testing.T) {
	items := []int{1, 2, 3}
	page := Page(items, 1, 2)
	page[0] = 99
	assert.Equal(t, 1, items[0])
}

func TestValidatePage(t *testing.T) {
	assert.NoError(t, ValidatePage(5, 47, 10))
	assert.ErrorIs(t, ValidatePage(6, 47, 10), ErrPageOutOfRange)
	assert.ErrorIs(t, ValidatePage(0, 47, 10), ErrPageOutOfRange)
	assert.NoError(t, ValidatePage(1, 0, 10))
	assert.ErrorIs(t, ValidatePage(2, 0, 10), ErrPageOutOfRange)
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		current  int
		pages    []int
		first    bool
		leadEll  bool
		last     bool
		trailEll bool
		prev     bool
		next     bool
	}{
		{name: "first page of five", total: 47, current: 1, pages: []int{1, 2, 3, 4, 5}, next: true},
		{name: "last page of five", total: 47, current: 5, pages: []int{1, 2, 3, 4, 5}, prev: true},
		{name: "start of many", total: 200, current: 1, pages: []int{1, 2, 3, 4, 5}, last: true, trailEll: true, next: true},
		{name: "middle of many", total: 200, current: 10, pages: []int{8, 9, 10, 11, 12}, first: true, leadEll: true, last: true, trailEll: true, prev: true, next: true},
		{name: "window touches page two", total: 200, current: 4, pages: []int{2, 3, 4, 5, 6}, first: true, last: true, trailEll: true, prev: true, next: true},
		{name: "end of many", total: 200, current: 20, pages: []int{16, 17, 18, 19, 20}, first: true, leadEll: true, prev: true},
		{name: "near end", total: 200, current: 18, pages: []int{16, 17, 18, 19, 20}, first: true, leadEll: true, prev: true, next: true},
		{name: "window one before last", total: 70, current: 3, pages: []int{1, 2, 3, 4, 5}, last: true, trailEll: true, prev: true, next: true},
		{name: "window ends at last minus one", total: 60, current: 3, pages: []int{1, 2, 3, 4, 5}, last: true, prev: true, next: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := Window(tc.total, tc.current, DefaultPageSize)
			assert.Equal(t, tc.pages, w.Pages)
			assert.Equal(t, tc.first, w.ShowFirst, "ShowFirst")
			assert.Equal(t, tc.leadEll, w.LeadingEllipsis, "LeadingEllipsis")
			assert.Equal(t, tc.last, w.ShowLast, "ShowLast")
			assert.Equal(t, tc.trailEll, w.TrailingEllipsis, "TrailingEllipsis")
			assert.Equal(t, tc.prev, w.HasPrev, "HasPrev")
			assert.Equal(t, tc.next, w.HasNext, "HasNext")
		})
	}
}

func TestWindow_ItemRange(t *testing.T) {
	w := Window(47, 5, DefaultPageSize)
	assert.Equal(t, 5, w.TotalPages)
	assert.Equal(t, 41, w.StartItem)
	assert.Equal(t, 47, w.EndItem)

	single := Window(3, 1, DefaultPageSize)
	assert.Equal(t, []int{1}, single.Pages)
	assert.False(t, single.HasPrev)
	assert.False(t, single.HasNext)

	empty := Window(0, 1, DefaultPageSize)
	assert.Empty(t, empty.Pages)
	assert.Zero(t, empty.StartItem)
	assert.Zero(t, empty.EndItem)
}
