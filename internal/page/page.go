// Package page holds the pagination contract shared by the query engines.
package page

import "math"

const (
	DefaultSize = 20
	MaxSize     = 100
)

// Request selects one page of a result set. Index is zero-based.
type Request struct {
	Index  int
	Size   int
	SortBy string
	Desc   bool
}

// NewRequest clamps index and size into the accepted range:
// a negative index becomes 0 and a size outside (0, MaxSize] becomes DefaultSize.
func NewRequest(index, size int) Request {
	if index < 0 {
		index = 0
	}
	if size <= 0 || size > MaxSize {
		size = DefaultSize
	}
	return Request{Index: index, Size: size}
}

// Offset is the number of items that precede the page. It saturates at
// math.MaxInt instead of overflowing for very large indexes.
func (r Request) Offset() int {
	if r.Index <= 0 || r.Size <= 0 {
		return 0
	}
	if r.Index > math.MaxInt/r.Size {
		return math.MaxInt
	}
	return r.Index * r.Size
}

// Page is one slice of a result set plus the total number of matches
// before pagination.
type Page[T any] struct {
	Items   []T
	Request Request
	Total   int
}

// TotalPages returns ceil(Total / Size).
func (p Page[T]) TotalPages() int {
	if p.Request.Size <= 0 {
		return 0
	}
	return (p.Total + p.Request.Size - 1) / p.Request.Size
}

// Slice cuts the requested page out of an already filtered and ordered set.
// Total always reflects len(items) so callers can tell an out of range page
// from an empty result.
func Slice[T any](items []T, r Request) Page[T] {
	total := len(items)
	start := r.Offset()
	if start < 0 || start >= total || r.Size <= 0 {
		return Page[T]{Items: []T{}, Request: r, Total: total}
	}
	end := start + min(r.Size, total-start)
	out := make([]T, end-start)
	copy(out, items[start:end])
	return Page[T]{Items: out, Request: r, Total: total}
}
