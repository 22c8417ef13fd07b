package store

import (
	"context"
	"sync"
	"time"

	"bookcatalog/internal/user"
)

var _ user.Repository = (*Users)(nil)

// Users is an in-memory user.Repository with a unique email index.
type Users struct {
	mu      sync.RWMutex
	byID    map[int64]user.User
	byEmail map[string]int64
	nextID  int64
	now     func() time.Time
}

func NewUsers() *Users {
	return &Users{
		byID:    make(map[int64]user.User),
		byEmail: make(map[string]int64),
		nextID:  1,
		now:     time.Now,
	}
}

func (s *Users) Create(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[u.Email]; exists {
		return user.ErrAlreadyExists
	}
	u.ID = s.nextID
	u.CreatedAt = s.now().UTC()
	s.nextID++

	s.byID[u.ID] = *u
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *Users) GetByID(ctx context.Context, id int64) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrNotFound
}

func (s *Users) GetByEmail(ctx context.Context, email string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.byEmail[email]; ok {
		return s.byID[id], nil
	}
	return user.User{}, user.ErrNotFound
}

func (s *Users) GetByConfirmationCode(ctx context.Context, code string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if code == "" {
		return user.User{}, user.ErrNotFound
	}
	for _, u := range s.byID {
		if u.ConfirmationCode == code {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (s *Users) Enable(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Enabled = true
	u.ConfirmationCode = ""
	s.byID[id] = u
	return nil
}
