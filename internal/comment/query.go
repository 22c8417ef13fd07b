package comment

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"bookcatalog/internal/page"
)

// Filter narrows a book's comments. A zero Since and a blank Author mean
// "no constraint".
type Filter struct {
	BookID int64
	Author string
	Since  time.Time
}

// Match reports whether c passes every constraint of f. The author filter
// is a case-sensitive substring match.
func (f Filter) Match(c Comment) bool {
	if c.BookID != f.BookID {
		return false
	}
	if f.HasAuthor() && !strings.Contains(c.Author, f.Author) {
		return false
	}
	if !f.Since.IsZero() && c.CreatedAt.Before(f.Since) {
		return false
	}
	return true
}

// HasAuthor reports whether Author holds anything besides whitespace.
func (f Filter) HasAuthor() bool {
	return strings.TrimSpace(f.Author) != ""
}

// Query filters comments with f, orders them newest first and returns the
// requested page. Sort fields in req are ignored.
func Query(comments []Comment, f Filter, req page.Request) page.Page[Comment] {
	matched := make([]Comment, 0, len(comments))
	for _, c := range comments {
		if f.Match(c) {
			matched = append(matched, c)
		}
	}
	SortNewestFirst(matched)
	return page.Slice(matched, req)
}

// SortNewestFirst orders by CreatedAt descending, then ID descending.
func SortNewestFirst(comments []Comment) {
	slices.SortFunc(comments, func(a, b Comment) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
