package pipeline

import (
	"time"

	"discussion_bot/internal/model"
	"discussion_bot/internal/reconcile"
)

// Outcome categorizes how a cycle ended.
type Outcome string

// Cycle outcomes.
const (
	OutcomeOK            Outcome = "ok"
	OutcomeMissingConfig Outcome = "missing_config"
	OutcomeFetchFailed   Outcome = "fetch_failed"
	OutcomeParseFailed   Outcome = "parse_failed"
	OutcomeNoSessions    Outcome = "no_sessions"
	OutcomeListFailed    Outcome = "list_failed"
)

// CreateResult is the outcome of one create request.
type CreateResult struct {
	Request model.CreateChannelRequest
	Channel model.Channel
	Err     error
}

// CycleResult summarizes one cycle. Err is set for every outcome but OutcomeOK;
// individual create failures are listed in Failed and leave the outcome OK.
type CycleResult struct {
	Outcome  Outcome
	Err      error
	Sessions []model.Session
	Warnings int
	Skipped  []reconcile.Skip
	Created  []model.Channel
	Failed   []CreateResult
	Duration time.Duration
}

// OK reports whether the cycle completed reconciliation.
func (r *CycleResult) OK() bool {
	return r.Outcome == OutcomeOK
}
