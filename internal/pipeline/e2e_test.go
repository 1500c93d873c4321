package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"discussion_bot/internal/model"
	"discussion_bot/internal/scraper"
)

const discussionsPage = `<!doctype html>
<html><body>
<div class="e-con-inner">
  <div class="elementor-widget-heading"><h2>Attend an Upcoming Discussion</h2></div>
  <div>
    <div>
      <div>
        <h2>“Review-of Randall’s Aristotle”</h2>
        <a class="elementor-cta" href="/events/aristotle">
          <div class="elementor-cta__description">November 2, 2026</div>
        </a>
      </div>
      <div>
        <h2>Introduction to Objectivism</h2>
        <a class="elementor-cta" href="https://example.org/events/intro">
          <div class="elementor-cta__description">November 9, 2026</div>
        </a>
      </div>
      <div>
        <h2>Atlas Shrugged</h2>
      </div>
    </div>
  </div>
</div>
</body></html>`

func TestRunCycleAgainstPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/discussions" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(discussionsPage))
	}))
	defer srv.Close()

	channels := &mockChannels{existing: []model.Channel{
		{ID: "1", Name: "review-of-randall’s-aristotle", Kind: model.KindForum},
		{ID: "2", Name: "introduction-to-objectivism", Kind: model.KindOther},
	}}
	s := scraper.New(srv.Client(), srv.URL+"/discussions", discardLogger())
	p := New(s, channels, Options{CategoryID: "cat", Concurrency: 1}, discardLogger())

	res := p.RunCycle(context.Background())

	if !res.OK() {
		t.Fatalf("expected ok outcome, got %s: %v", res.Outcome, res.Err)
	}

	wantSessions := []model.Session{
		{Title: "Review-of Randall’s Aristotle", Date: "November 2, 2026", Link: srv.URL + "/events/aristotle"},
		{Title: "Introduction to Objectivism", Date: "November 9, 2026", Link: "https://example.org/events/intro"},
		{Title: "Atlas Shrugged"},
	}
	if diff := cmp.Diff(wantSessions, res.Sessions); diff != "" {
		t.Errorf("sessions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(1, res.Warnings); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}

	wantCreated := []model.CreateChannelRequest{
		{Name: "Introduction to Objectivism", Kind: model.KindForum, ParentCategory: "cat", Topic: "November 9, 2026"},
		{Name: "Atlas Shrugged", Kind: model.KindForum, ParentCategory: "cat"},
	}
	if diff := cmp.Diff(wantCreated, channels.created, sortRequests); diff != "" {
		t.Errorf("created requests mismatch (-want +got):\n%s", diff)
	}
}

func TestRunCycleAgainstMissingPage(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	channels := &mockChannels{}
	s := scraper.New(srv.Client(), srv.URL+"/gone", discardLogger())
	p := New(s, channels, Options{CategoryID: "cat"}, discardLogger())

	res := p.RunCycle(context.Background())

	if diff := cmp.Diff(OutcomeFetchFailed, res.Outcome); diff != "" {
		t.Errorf("outcome mismatch (-want +got):\n%s", diff)
	}
	if channels.listed != 0 {
		t.Errorf("channels should not be listed after a fetch failure")
	}
}
