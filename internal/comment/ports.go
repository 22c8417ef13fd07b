package comment

import (
	"context"

	"bookcatalog/internal/book"
	"bookcatalog/internal/page"
	"bookcatalog/internal/user"
)

// Repository defines the contract for comment storage. List must apply the
// same filter and ordering as Query.
type Repository interface {
	List(ctx context.Context, f Filter, req page.Request) ([]Comment, int, error)
	Get(ctx context.Context, bookID, commentID int64) (Comment, error)
	Add(ctx context.Context, bookID int64, author, text string) (Comment, error)
	// Delete removes the comment; deleting a missing comment is not an error.
	Delete(ctx context.Context, bookID, commentID int64) error
	ListByAuthor(ctx context.Context, author string) ([]Comment, error)
}

type BookFinder interface {
	GetByID(ctx context.Context, id int64) (book.Book, error)
}

type UserFinder interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
}
