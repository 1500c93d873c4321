// Package metrics exposes Prometheus counters for the sync cycle.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Cycles counts completed cycles.
	// Labels: outcome (e.g. "ok", "fetch_failed", "parse_failed", "no_sessions")
	Cycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "discussion_bot",
			Name:      "cycles_total",
			Help:      "Total sync cycles by outcome",
		},
		[]string{"outcome"},
	)

	// CyclesSkipped counts ticks dropped because a cycle was still running.
	CyclesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "discussion_bot",
			Name:      "cycles_skipped_total",
			Help:      "Timer ticks skipped while a previous cycle was in flight",
		},
	)

	// SessionsScraped counts session records extracted from the source page.
	SessionsScraped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "discussion_bot",
			Name:      "sessions_scraped_total",
			Help:      "Total session records extracted from the source page",
		},
	)

	// PartialSessions counts records kept with a missing date or link.
	PartialSessions = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "discussion_bot",
			Name:      "partial_sessions_total",
			Help:      "Session records with missing date or link",
		},
	)

	// Channels counts reconciliation decisions.
	// Labels: result: "created", "exists", "failed"
	Channels = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "discussion_bot",
			Name:      "channels_total",
			Help:      "Channel reconciliation results",
		},
		[]string{"result"},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
