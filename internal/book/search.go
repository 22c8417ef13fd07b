package book

import (
	"cmp"
	"slices"
	"strings"

	"bookcatalog/internal/page"
)

// Search filters, sorts and paginates the full catalog.
//
// A book matches when query is blank or when the case-folded query is a
// substring of the case-folded title or author. The result total counts
// every match, not just the returned page.
func Search(books []Book, query string, req page.Request) page.Page[Book] {
	matched := make([]Book, 0, len(books))
	q := strings.ToLower(query)
	blank := strings.TrimSpace(query) == ""
	for _, b := range books {
		if blank || matches(b, q) {
			matched = append(matched, b)
		}
	}

	sortBooks(matched, ParseSortKey(req.SortBy), req.Desc)
	return page.Slice(matched, req)
}

func matches(b Book, foldedQuery string) bool {
	return strings.Contains(strings.ToLower(b.Title), foldedQuery) ||
		strings.Contains(strings.ToLower(b.Author), foldedQuery)
}

func sortBooks(books []Book, key SortKey, desc bool) {
	var compare func(a, b Book) int
	switch key {
	case SortNone:
		return
	case SortTitle:
		compare = func(a, b Book) int { return cmp.Compare(a.Title, b.Title) }
	case SortAuthor:
		compare = func(a, b Book) int { return cmp.Compare(a.Author, b.Author) }
	case SortYear:
		compare = func(a, b Book) int { return cmp.Compare(a.PubYear, b.PubYear) }
	default:
		compare = func(a, b Book) int { return cmp.Compare(a.ID, b.ID) }
	}

	if desc {
		slices.SortStableFunc(books, func(a, b Book) int { return -compare(a, b) })
		return
	}
	slices.SortStableFunc(books, compare)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
