package book

import (
	"context"
)

// Repository defines the contract for book data storage.
type Repository interface {
	// FetchAll returns the whole catalog in id order.
	FetchAll(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	Add(ctx context.Context, nb NewBook) (Book, error)
}

// Notifier is told about books added to the catalog.
type Notifier interface {
	NewBookAdded(ctx context.Context, b Book) error
}
