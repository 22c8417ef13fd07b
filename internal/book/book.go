package book

import (
	"time"

	"bookcatalog/internal/apperr"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = apperr.New(apperr.KindNotFound, "book not found")

// Book represents a catalog entry.
type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	PubYear   int       `json:"pub_year"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBook is the input for adding a book to the catalog.
type NewBook struct {
	Title   string `json:"title" validate:"required,max=255"`
	Author  string `json:"author" validate:"required,max=255"`
	PubYear int    `json:"pub_year" validate:"gte=0,lte=9999"`
}

// SortKey names the field a catalog listing is ordered by.
type SortKey string

const (
	SortNone   SortKey = ""
	SortID     SortKey = "id"
	SortTitle  SortKey = "title"
	SortAuthor SortKey = "author"
	SortYear   SortKey = "year"
)

// ParseSortKey maps a request parameter to a SortKey. An empty value keeps
// the source order; unrecognised values fall back to id order.
func ParseSortKey(s string) SortKey {
	switch normalize(s) {
	case "":
		return SortNone
	case "title":
		return SortTitle
	case "author":
		return SortAuthor
	case "year", "pub_year":
		return SortYear
	default:
		return SortID
	}
}
