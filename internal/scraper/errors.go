package scraper

import (
	"errors"
	"fmt"
)

// ErrMissingConfiguration is returned when no source URL is configured.
var ErrMissingConfiguration = errors.New("scrape url is not configured")

// FetchError reports a non-success HTTP response from the source page.
type FetchError struct {
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("fetch failed: %s", e.Status)
	}
	return fmt.Sprintf("fetch failed: status %d", e.StatusCode)
}

// ParseErrorKind identifies why extraction stopped.
type ParseErrorKind int

// Hard extraction failures.
const (
	NoContainer ParseErrorKind = iota + 1
	NoTitle
)

// ParseError signals that the page markup no longer matches the expected shape.
type ParseError struct {
	Kind ParseErrorKind
	// Index is the position of the offending entry for NoTitle.
	Index int
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case NoContainer:
		return "no upcoming discussions found"
	case NoTitle:
		return fmt.Sprintf("missing session title (entry %d)", e.Index)
	default:
		return "parse error"
	}
}
