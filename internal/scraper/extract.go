package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"discussion_bot/internal/model"
)

// Markers of the source page layout.
const (
	HeaderMarker        = "Attend an Upcoming Discussion"
	containerSelector   = ".e-con-inner"
	titleSelector       = "h2"
	descriptionSelector = ".elementor-cta__description"
	ctaSelector         = ".elementor-cta"
)

const quoteChars = "\"“”"

// Warning flags an entry that was kept with missing date or link.
type Warning struct {
	Index   int
	Title   string
	Missing []string
}

// Extract parses the source page into sessions in document order.
//
// The page is expected to contain one or more containers whose text includes
// HeaderMarker. Every child of such a container other than the heading holds a
// wrapper element whose children are the individual session entries.
// A missing container or an entry without a title is a *ParseError; a missing
// date or link only produces a Warning.
func Extract(html string) ([]model.Session, []Warning, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, fmt.Errorf("parse html: %w", err)
	}

	containers := doc.Find(containerSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Text(), HeaderMarker)
	})
	if containers.Length() == 0 {
		return nil, nil, &ParseError{Kind: NoContainer}
	}

	var (
		sessions []model.Session
		warnings []Warning
	)
	for _, child := range containers.Children().EachIter() {
		if strings.Contains(child.Text(), HeaderMarker) {
			continue
		}
		for _, entry := range child.Children().First().Children().EachIter() {
			index := len(sessions)
			session, missing := extractEntry(entry)
			if session.Title == "" {
				return nil, nil, &ParseError{Kind: NoTitle, Index: index}
			}
			if len(missing) > 0 {
				warnings = append(warnings, Warning{Index: index, Title: session.Title, Missing: missing})
			}
			sessions = append(sessions, session)
		}
	}

	return sessions, warnings, nil
}

func extractEntry(entry *goquery.Selection) (model.Session, []string) {
	session := model.Session{
		Title: cleanTitle(entry.Find(titleSelector).First().Text()),
		Date:  strings.TrimSpace(entry.Find(descriptionSelector).First().Text()),
	}
	if href, ok := entry.Find(ctaSelector).First().Attr("href"); ok {
		session.Link = strings.TrimSpace(href)
	}

	var missing []string
	if session.Date == "" {
		missing = append(missing, "date")
	}
	if session.Link == "" {
		missing = append(missing, "link")
	}
	return session, missing
}

func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, quoteChars)
	return strings.TrimSpace(s)
}
