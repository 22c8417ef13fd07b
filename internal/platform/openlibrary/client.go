// Package openlibrary fetches catalog entries from the Open Library search
// API for seeding.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/platform/logger"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://openlibrary.org"

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
}

// NewClient returns a client limited to rps requests per second that
// retries 429 and 5xx responses up to maxRetries times.
func NewClient(baseURL, userAgent string, rps, maxRetries int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		userAgent:  userAgent,
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries: maxRetries,
		backoff:    time.Second,
	}
}

// SearchResponse matches search.json.
type SearchResponse struct {
	NumFound int   `json:"numFound"`
	Docs     []Doc `json:"docs"`
}

type Doc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorNames      []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
}

// NewBook maps a search hit to catalog input using its first listed author.
// ok is false for hits without a title or author.
func (d Doc) NewBook() (book.NewBook, bool) {
	title := strings.TrimSpace(d.Title)
	if title == "" || len(d.AuthorNames) == 0 || strings.TrimSpace(d.AuthorNames[0]) == "" {
		return book.NewBook{}, false
	}
	return book.NewBook{
		Title:   title,
		Author:  strings.TrimSpace(d.AuthorNames[0]),
		PubYear: d.FirstPublishYear,
	}, true
}

// Search runs a free text query and returns at most limit hits.
func (c *Client) Search(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	u := fmt.Sprintf("%s/search.json?q=%s&fields=key,title,author_name,first_publish_year&limit=%d",
		c.baseURL, url.QueryEscape(query), limit)

	var res SearchResponse
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Books runs Search and keeps the hits that map to a valid NewBook.
func (c *Client) Books(ctx context.Context, query string, limit int) ([]book.NewBook, error) {
	res, err := c.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]book.NewBook, 0, len(res.Docs))
	for _, d := range res.Docs {
		if nb, ok := d.NewBook(); ok {
			out = append(out, nb)
		}
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, u string, target any) error {
	log := logger.C(ctx).With().Str("component", "openlibrary").Logger()

	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			wait := c.backoff << uint(i-1)
			log.Warn().Err(lastErr).Int("attempt", i).Dur("backoff", wait).Msg("retrying")
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retry, err := c.do(ctx, u, target)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

// do performs one request. retry reports whether a failure is transient.
func (c *Client) do(ctx context.Context, u string, target any) (retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		transient := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return transient, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return false, json.NewDecoder(resp.Body).Decode(target)
}
