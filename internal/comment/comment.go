package comment

import (
	"strings"
	"time"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/user"
)

// ErrNotFound is returned when a comment does not exist on the given book.
var ErrNotFound = apperr.New(apperr.KindNotFound, "comment not found")

// Comment is a reader's note on a book. It is never edited after creation.
type Comment struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"book_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	BookTitle string    `json:"book_title,omitempty"`
}

// Actor is the caller on whose behalf a moderation action runs.
type Actor struct {
	Email string
	Role  string
}

// IsModerator reports whether the actor may delete comments.
func (a Actor) IsModerator() bool {
	return strings.EqualFold(a.Role, user.RoleAdmin)
}
