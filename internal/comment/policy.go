package comment

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"bookcatalog/internal/apperr"
)

const (
	DefaultMaxLength    = 1000
	DefaultDeleteWindow = 24 * time.Hour
)

// DefaultForbiddenWords is checked in this order; the first hit is reported.
var DefaultForbiddenWords = []string{"spam", "viagra", "casino"}

var (
	ErrEmptyText     = errors.New("comment text cannot be empty")
	ErrTextTooLong   = errors.New("comment text too long")
	ErrForbiddenWord = errors.New("comment contains forbidden word")
)

// Policy holds the content and moderation rules for comments.
type Policy struct {
	MaxLength      int
	ForbiddenWords []string
	DeleteWindow   time.Duration
}

func DefaultPolicy() Policy {
	return NewPolicy(DefaultMaxLength, DefaultForbiddenWords, DefaultDeleteWindow)
}

// NewPolicy builds a policy, lower-casing the word list and dropping blank
// entries. Non-positive limits fall back to the defaults.
func NewPolicy(maxLength int, forbidden []string, deleteWindow time.Duration) Policy {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if deleteWindow <= 0 {
		deleteWindow = DefaultDeleteWindow
	}
	words := make([]string, 0, len(forbidden))
	for _, w := range forbidden {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			words = append(words, w)
		}
	}
	return Policy{MaxLength: maxLength, ForbiddenWords: words, DeleteWindow: deleteWindow}
}

// ValidateFields checks that a new comment names a book, an author and
// some text.
func ValidateFields(bookID int64, author, text string) error {
	if bookID <= 0 {
		return apperr.New(apperr.KindFieldValidation, "bookId must be greater than 0").WithField("bookId")
	}
	if strings.TrimSpace(author) == "" {
		return apperr.New(apperr.KindFieldValidation, "author is required").WithField("author")
	}
	if strings.TrimSpace(text) == "" {
		return apperr.New(apperr.KindFieldValidation, "text is required").WithField("text")
	}
	return nil
}

// ValidateText applies the content rules to text. Only the first violation
// is reported: blank text, then length, then forbidden words.
func (p Policy) ValidateText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return apperr.Wrap(ErrEmptyText, apperr.KindContentPolicy, ErrEmptyText.Error()).WithField("text")
	}

	if utf8.RuneCountInString(trimmed) > p.MaxLength {
		msg := fmt.Sprintf("comment text exceeds maximum length of %d characters", p.MaxLength)
		return apperr.Wrap(ErrTextTooLong, apperr.KindContentPolicy, msg).WithField("text")
	}

	lower := strings.ToLower(trimmed)
	for _, w := range p.ForbiddenWords {
		if strings.Contains(lower, w) {
			msg := fmt.Sprintf("%s: %s", ErrForbiddenWord.Error(), w)
			return apperr.Wrap(ErrForbiddenWord, apperr.KindContentPolicy, msg).WithField("text")
		}
	}
	return nil
}

// CanDelete reports whether a comment created at createdAt may still be
// removed at now. The window boundary itself is still deletable.
func (p Policy) CanDelete(createdAt, now time.Time) error {
	if createdAt.IsZero() {
		return apperr.New(apperr.KindPreconditionFailed, "createdAt is required")
	}
	if now.Sub(createdAt) > p.DeleteWindow {
		return apperr.Newf(apperr.KindTooOld,
			"comment was created more than %s ago and cannot be deleted", formatWindow(p.DeleteWindow))
	}
	return nil
}

func formatWindow(d time.Duration) string {
	if d%time.Hour == 0 {
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	}
	return d.String()
}
