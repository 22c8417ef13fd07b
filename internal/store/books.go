// Package store holds in-memory implementations of the repository ports,
// used with STORE=memory and in tests.
package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"bookcatalog/internal/book"
)

var _ book.Repository = (*Books)(nil)

// Books is an in-memory book.Repository. FetchAll returns books in id order.
type Books struct {
	mu     sync.RWMutex
	books  []book.Book
	nextID int64
	now    func() time.Time
}

func NewBooks() *Books {
	return &Books{nextID: 1, now: time.Now}
}

func (s *Books) FetchAll(ctx context.Context) ([]book.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.books), nil
}

func (s *Books) GetByID(ctx context.Context, id int64) (book.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.find(id); ok {
		return b, nil
	}
	return book.Book{}, book.ErrNotFound
}

func (s *Books) Add(ctx context.Context, nb book.NewBook) (book.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := book.Book{
		ID:        s.nextID,
		Title:     nb.Title,
		Author:    nb.Author,
		PubYear:   nb.PubYear,
		CreatedAt: s.now().UTC(),
	}
	s.nextID++
	s.books = append(s.books, b)
	return b, nil
}

func (s *Books) title(id int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.find(id)
	return b.Title, ok
}

// find expects s.mu to be held. Ids are assigned in ascending order so the
// slice stays sorted by id.
func (s *Books) find(id int64) (book.Book, bool) {
	i, ok := slices.BinarySearchFunc(s.books, id, func(b book.Book, id int64) int {
		switch {
		case b.ID < id:
			return -1
		case b.ID > id:
			return 1
		}
		return 0
	})
	if !ok {
		return book.Book{}, false
	}
	return s.books[i], true
}
