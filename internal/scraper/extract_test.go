package scraper

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"discussion_bot/internal/model"
)

const singleSessionHTML = `
<div class="e-con-inner">
  <h2>Attend an Upcoming Discussion</h2>
  <div>
    <div>
      <div>
        <h2>Session Title</h2>
        <div class="elementor-cta__description">Session Date</div>
        <a class="elementor-cta" href="https://example.com/session">Link</a>
      </div>
    </div>
  </div>
</div>`

const multiSessionHTML = `
<html><body>
<div class="e-con-inner"><p>Unrelated section</p></div>
<div class="e-con-inner">
  <div><h2>Attend an Upcoming Discussion</h2></div>
  <div>
    <div class="e-con-full">
      <div>
        <h2>  “Review-of Randall’s Aristotle”  </h2>
        <a class="elementor-cta" href="https://example.com/aristotle">
          <div class="elementor-cta__description"> October 3, 2026 at 7pm </div>
        </a>
      </div>
      <div>
        <h2>"Atlas Shrugged, Part II"</h2>
        <a class="elementor-cta" href="https://example.com/atlas">
          <div class="elementor-cta__description">October 10, 2026</div>
        </a>
      </div>
    </div>
    <div><h2>Ignored: not the first child</h2></div>
  </div>
  <div>
    <div>
      <div>
        <h2>The Fountainhead</h2>
        <a class="elementor-cta" href="https://example.com/fountainhead">
          <div class="elementor-cta__description">October 17, 2026</div>
        </a>
      </div>
    </div>
  </div>
</div>
</body></html>`

const partialSessionHTML = `
<div class="e-con-inner">
  <h2>Attend an Upcoming Discussion</h2>
  <div><div><div><h2>Session Title</h2></div></div></div>
</div>`

func TestExtract(t *testing.T) {
	tests := []struct {
		name         string
		html         string
		wantSessions []model.Session
		wantWarnings []Warning
	}{
		{
			name: "single well-formed session",
			html: singleSessionHTML,
			wantSessions: []model.Session{
				{Title: "Session Title", Date: "Session Date", Link: "https://example.com/session"},
			},
		},
		{
			name: "multiple sessions keep document order and lose quotes",
			html: multiSessionHTML,
			wantSessions: []model.Session{
				{Title: "Review-of Randall’s Aristotle", Date: "October 3, 2026 at 7pm", Link: "https://example.com/aristotle"},
				{Title: "Atlas Shrugged, Part II", Date: "October 10, 2026", Link: "https://example.com/atlas"},
				{Title: "The Fountainhead", Date: "October 17, 2026", Link: "https://example.com/fountainhead"},
			},
		},
		{
			name: "missing date and link is tolerated",
			html: partialSessionHTML,
			wantSessions: []model.Session{
				{Title: "Session Title"},
			},
			wantWarnings: []Warning{
				{Index: 0, Title: "Session Title", Missing: []string{"date", "link"}},
			},
		},
		{
			name: "missing link only",
			html: `<div class="e-con-inner"><h2>Attend an Upcoming Discussion</h2>
				<div><div><div><h2>Session Title</h2><div class="elementor-cta__description">Soon</div></div></div></div>
			</div>`,
			wantSessions: []model.Session{
				{Title: "Session Title", Date: "Soon"},
			},
			wantWarnings: []Warning{
				{Index: 0, Title: "Session Title", Missing: []string{"link"}},
			},
		},
		{
			name: "header only, no entries",
			html: `<div class="e-con-inner"><h2>Attend an Upcoming Discussion</h2></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, warnings, err := Extract(tt.html)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.wantSessions, sessions); diff != "" {
				t.Errorf("sessions mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantWarnings, warnings); diff != "" {
				t.Errorf("warnings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		wantKind ParseErrorKind
		wantMsg  string
	}{
		{
			name:     "no container",
			html:     `<div></div>`,
			wantKind: NoContainer,
			wantMsg:  "no upcoming discussions found",
		},
		{
			name:     "container without header marker",
			html:     `<div class="e-con-inner"><h2>Past Discussions</h2><div><div><div><h2>Old</h2></div></div></div></div>`,
			wantKind: NoContainer,
			wantMsg:  "no upcoming discussions found",
		},
		{
			name:     "marker outside a container",
			html:     `<section><h2>Attend an Upcoming Discussion</h2></section>`,
			wantKind: NoContainer,
			wantMsg:  "no upcoming discussions found",
		},
		{
			name: "entry without heading",
			html: `<div class="e-con-inner"><h2>Attend an Upcoming Discussion</h2>
				<div><div><div><p>No heading here</p></div></div></div>
			</div>`,
			wantKind: NoTitle,
			wantMsg:  "missing session title (entry 0)",
		},
		{
			name: "heading made only of quotes",
			html: `<div class="e-con-inner"><h2>Attend an Upcoming Discussion</h2>
				<div><div>
					<div><h2>First</h2></div>
					<div><h2> “” </h2></div>
				</div></div>
			</div>`,
			wantKind: NoTitle,
			wantMsg:  "missing session title (entry 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, _, err := Extract(tt.html)
			if err == nil {
				t.Fatalf("expected error, got sessions %v", sessions)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if diff := cmp.Diff(tt.wantKind, perr.Kind); diff != "" {
				t.Errorf("kind mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantMsg, err.Error()); diff != "" {
				t.Errorf("message mismatch (-want +got):\n%s", diff)
			}
			if sessions != nil {
				t.Errorf("expected nil sessions on error, got %v", sessions)
			}
		})
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Plain", want: "Plain"},
		{in: "  padded  ", want: "padded"},
		{in: `"straight"`, want: "straight"},
		{in: "“curly”", want: "curly"},
		{in: "”reversed“", want: "reversed"},
		{in: `""“doubled”""`, want: "doubled"},
		{in: `He said "hi"`, want: `He said "hi`},
		{in: `" spaced "`, want: "spaced"},
		{in: `""`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, cleanTitle(tt.in)); diff != "" {
				t.Errorf("cleanTitle(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}
