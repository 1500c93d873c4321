// Package scraper fetches the discussion listing page and extracts sessions from it.
package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"discussion_bot/internal/model"
)

const maxBodySize = 5 * 1024 * 1024

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Result holds the sessions of one scrape and any partial-data warnings.
type Result struct {
	Sessions []model.Session
	Warnings []Warning
}

// Scraper downloads the source page and extracts sessions.
type Scraper struct {
	client  HTTPClient
	url     string
	log     *slog.Logger
	timeout time.Duration
}

// New creates a Scraper for the page at pageURL. An empty pageURL is accepted
// and reported as ErrMissingConfiguration on every Scrape call.
func New(client HTTPClient, pageURL string, log *slog.Logger) *Scraper {
	return &Scraper{
		client:  client,
		url:     pageURL,
		log:     log,
		timeout: 30 * time.Second,
	}
}

// Scrape fetches the page and extracts its sessions.
func (s *Scraper) Scrape(ctx context.Context) (*Result, error) {
	if s.url == "" {
		return nil, ErrMissingConfiguration
	}

	body, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	sessions, warnings, err := Extract(body)
	if err != nil {
		return nil, err
	}

	for _, w := range warnings {
		s.log.Warn("missing session information; source structure may have changed",
			"index", w.Index, "title", w.Title, "missing", w.Missing)
	}

	return &Result{
		Sessions: resolveLinks(s.url, sessions),
		Warnings: warnings,
	}, nil
}

func (s *Scraper) fetch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "DiscussionChannelBot/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

// resolveLinks makes relative session links absolute against the page URL.
func resolveLinks(pageURL string, sessions []model.Session) []model.Session {
	base, err := url.Parse(pageURL)
	if err != nil {
		return sessions
	}
	out := make([]model.Session, len(sessions))
	for i, sess := range sessions {
		out[i] = sess
		if sess.Link == "" {
			continue
		}
		ref, err := url.Parse(sess.Link)
		if err != nil {
			continue
		}
		out[i].Link = base.ResolveReference(ref).String()
	}
	return out
}
