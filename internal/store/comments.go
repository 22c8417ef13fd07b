package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/comment"
	"bookcatalog/internal/page"
)

var _ comment.Repository = (*Comments)(nil)

// Comments is an in-memory comment.Repository. It reads titles from books
// and refuses comments on books that do not exist.
type Comments struct {
	mu       sync.RWMutex
	books    *Books
	comments []comment.Comment
	nextID   int64
	now      func() time.Time
}

func NewComments(books *Books) *Comments {
	return &Comments{books: books, nextID: 1, now: time.Now}
}

func (s *Comments) List(ctx context.Context, f comment.Filter, req page.Request) ([]comment.Comment, int, error) {
	s.mu.RLock()
	all := slices.Clone(s.comments)
	s.mu.RUnlock()

	p := comment.Query(all, f, req)
	s.withTitles(p.Items)
	return p.Items, p.Total, nil
}

func (s *Comments) Get(ctx context.Context, bookID, commentID int64) (comment.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.comments {
		if c.ID == commentID && c.BookID == bookID {
			title, _ := s.books.title(c.BookID)
			c.BookTitle = title
			return c, nil
		}
	}
	return comment.Comment{}, comment.ErrNotFound
}

func (s *Comments) Add(ctx context.Context, bookID int64, author, text string) (comment.Comment, error) {
	title, ok := s.books.title(bookID)
	if !ok {
		return comment.Comment{}, book.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := comment.Comment{
		ID:        s.nextID,
		BookID:    bookID,
		Author:    author,
		Text:      text,
		CreatedAt: s.now().UTC(),
	}
	s.nextID++
	s.comments = append(s.comments, c)

	c.BookTitle = title
	return c, nil
}

func (s *Comments) Delete(ctx context.Context, bookID, commentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.comments = slices.DeleteFunc(s.comments, func(c comment.Comment) bool {
		return c.ID == commentID && c.BookID == bookID
	})
	return nil
}

func (s *Comments) ListByAuthor(ctx context.Context, author string) ([]comment.Comment, error) {
	s.mu.RLock()
	out := make([]comment.Comment, 0)
	for _, c := range s.comments {
		if c.Author == author {
			out = append(out, c)
		}
	}
	s.mu.RUnlock()

	comment.SortNewestFirst(out)
	s.withTitles(out)
	return out, nil
}

func (s *Comments) withTitles(cs []comment.Comment) {
	for i := range cs {
		cs[i].BookTitle, _ = s.books.title(cs[i].BookID)
	}
}
