// Package mail holds the outbound notification senders.
package mail

import (
	"context"
	"net/url"
	"strings"

	"bookcatalog/internal/book"
	"bookcatalog/internal/platform/logger"
)

// LogSender writes notifications to the log instead of delivering them.
// It satisfies user.Mailer and book.Notifier.
type LogSender struct {
	baseURL string
	log     *logger.Logger // nil means the request scoped root logger
}

func NewLogSender(baseURL string) *LogSender {
	return &LogSender{baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LogSender) logFor(ctx context.Context) *logger.Logger {
	base := s.log
	if base == nil {
		base = logger.C(ctx)
	}
	l := base.With().Str("component", "mail").Logger()
	return &l
}

// ConfirmationLink is the URL a new user follows to enable the account.
func (s *LogSender) ConfirmationLink(code string) string {
	return s.baseURL + "/users/confirm?code=" + url.QueryEscape(code)
}

func (s *LogSender) SendConfirmation(ctx context.Context, email, name, code string) error {
	s.logFor(ctx).Info().
		Str("to", email).
		Str("name", name).
		Str("link", s.ConfirmationLink(code)).
		Msg("confirmation email")
	return nil
}

func (s *LogSender) NewBookAdded(ctx context.Context, b book.Book) error {
	s.logFor(ctx).Info().
		Int64("book_id", b.ID).
		Str("title", b.Title).
		Str("author", b.Author).
		Msg("new book notification")
	return nil
}
