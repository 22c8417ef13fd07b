package comment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/book"
	"bookcatalog/internal/page"
	"bookcatalog/internal/platform/logger"
	"bookcatalog/internal/platform/metrics"
	"bookcatalog/internal/user"
)

var errNotModerator = apperr.New(apperr.KindForbidden, "only moderators may delete comments")

// Service runs the comment lifecycle: validated creation, listing and
// time-limited moderation.
type Service struct {
	repo   Repository
	books  BookFinder
	users  UserFinder
	policy Policy
	now    func() time.Time
}

func NewService(repo Repository, books BookFinder, users UserFinder, policy Policy) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		users:  users,
		policy: policy,
		now:    time.Now,
	}
}

// Policy returns the rules the service enforces.
func (s *Service) Policy() Policy { return s.policy }

// Add validates and stores a comment on an existing book. Author and text
// are stored trimmed.
func (s *Service) Add(ctx context.Context, bookID int64, author, text string) (Comment, error) {
	if bookID <= 0 {
		return Comment{}, s.reject(ctx, "add", ValidateFields(bookID, author, text))
	}
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return Comment{}, err
	}
	if err := ValidateFields(bookID, author, text); err != nil {
		return Comment{}, s.reject(ctx, "add", err)
	}
	if err := s.policy.ValidateText(text); err != nil {
		return Comment{}, s.reject(ctx, "add", err)
	}

	c, err := s.repo.Add(ctx, bookID, strings.TrimSpace(author), strings.TrimSpace(text))
	if err != nil {
		return Comment{}, fmt.Errorf("add comment: %w", err)
	}

	metrics.CommentsAdded.Inc()
	logger.C(ctx).Info().
		Int64("book_id", bookID).
		Int64("comment_id", c.ID).
		Str("author", c.Author).
		Msg("comment added")
	return c, nil
}

// Delete removes a comment on behalf of actor. The privilege check runs
// before anything else; eligibility is judged on the stored creation time.
func (s *Service) Delete(ctx context.Context, actor Actor, bookID, commentID int64) error {
	if !actor.IsModerator() {
		return s.reject(ctx, "delete", errNotModerator)
	}
	if bookID <= 0 {
		return s.reject(ctx, "delete", apperr.New(apperr.KindPreconditionFailed, "bookId must be greater than 0"))
	}
	if commentID <= 0 {
		return s.reject(ctx, "delete", apperr.New(apperr.KindPreconditionFailed, "commentId must be greater than 0"))
	}

	c, err := s.repo.Get(ctx, bookID, commentID)
	if err != nil {
		return err
	}
	if err := s.policy.CanDelete(c.CreatedAt, s.now()); err != nil {
		return s.reject(ctx, "delete", err)
	}

	if err := s.repo.Delete(ctx, bookID, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	metrics.CommentsDeleted.Inc()
	logger.C(ctx).Info().
		Int64("book_id", bookID).
		Int64("comment_id", commentID).
		Str("moderator", actor.Email).
		Msg("comment deleted")
	return nil
}

// List returns one page of a book's comments, newest first.
func (s *Service) List(ctx context.Context, f Filter, req page.Request) (page.Page[Comment], error) {
	if f.BookID <= 0 {
		return page.Page[Comment]{}, book.ErrNotFound
	}
	if _, err := s.books.GetByID(ctx, f.BookID); err != nil {
		return page.Page[Comment]{}, err
	}

	items, total, err := s.repo.List(ctx, f, req)
	if err != nil {
		return page.Page[Comment]{}, fmt.Errorf("list comments: %w", err)
	}
	if items == nil {
		items = []Comment{}
	}
	return page.Page[Comment]{Items: items, Request: req, Total: total}, nil
}

// ListByUser returns every comment written by the user, newest first, with
// the title of the book each one belongs to.
func (s *Service) ListByUser(ctx context.Context, userID int64) (user.User, []Comment, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, nil, err
	}

	comments, err := s.repo.ListByAuthor(ctx, u.Email)
	if err != nil {
		return user.User{}, nil, fmt.Errorf("list comments by author: %w", err)
	}
	if comments == nil {
		comments = []Comment{}
	}
	SortNewestFirst(comments)
	return u, comments, nil
}

func (s *Service) reject(ctx context.Context, op string, err error) error {
	kind := apperr.KindOf(err)
	metrics.CommentsRejected.WithLabelValues(op, kind.String()).Inc()
	logger.C(ctx).Debug().Str("op", op).Str("kind", kind.String()).Err(err).Msg("comment rejected")
	return err
}
