package book

import (
	"context"
	"fmt"
	"strings"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/page"
	"bookcatalog/internal/platform/logger"
)

// Service provides catalog business logic.
type Service struct {
	repo     Repository
	notifier Notifier
}

// NewService creates a new book service. notifier may be nil.
func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Search runs the catalog query engine over the full collection.
func (s *Service) Search(ctx context.Context, query string, req page.Request) (page.Page[Book], error) {
	books, err := s.repo.FetchAll(ctx)
	if err != nil {
		return page.Page[Book]{}, fmt.Errorf("fetch books: %w", err)
	}
	return Search(books, query, req), nil
}

// GetByID returns a book by its id.
func (s *Service) GetByID(ctx context.Context, id int64) (Book, error) {
	if id <= 0 {
		return Book{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Add validates and stores a new book, then notifies subscribers.
// A notification failure is logged and does not fail the add.
func (s *Service) Add(ctx context.Context, nb NewBook) (Book, error) {
	nb.Title = strings.TrimSpace(nb.Title)
	nb.Author = strings.TrimSpace(nb.Author)
	if nb.Title == "" {
		return Book{}, apperr.New(apperr.KindFieldValidation, "title is required").WithField("title")
	}
	if nb.Author == "" {
		return Book{}, apperr.New(apperr.KindFieldValidation, "author is required").WithField("author")
	}

	b, err := s.repo.Add(ctx, nb)
	if err != nil {
		return Book{}, fmt.Errorf("add book: %w", err)
	}

	log := logger.C(ctx)
	log.Info().Int64("book_id", b.ID).Str("title", b.Title).Msg("book added")

	if s.notifier != nil {
		if err := s.notifier.NewBookAdded(ctx, b); err != nil {
			log.Warn().Err(err).Int64("book_id", b.ID).Msg("new book notification failed")
		}
	}
	return b, nil
}
