package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"discussion_bot/internal/metrics"
	"discussion_bot/internal/pipeline"
)

const maxCycleTimeout = 10 * time.Minute

// Cycler runs one sync cycle.
type Cycler interface {
	RunCycle(ctx context.Context) *pipeline.CycleResult
}

// Reporter is told about every finished cycle.
type Reporter interface {
	Report(ctx context.Context, res *pipeline.CycleResult)
}

// Scheduler runs the sync cycle on a fixed interval.
type Scheduler struct {
	cycler   Cycler
	reporter Reporter
	log      *slog.Logger
	tick     time.Duration
	timeout  time.Duration

	running atomic.Bool
	wg      sync.WaitGroup
}

// New creates a Scheduler that starts a cycle every interval.
// Each cycle is bounded by the interval, capped at ten minutes.
func New(cycler Cycler, interval time.Duration, log *slog.Logger) *Scheduler {
	return &Scheduler{
		cycler:  cycler,
		log:     log,
		tick:    interval,
		timeout: min(interval, maxCycleTimeout),
	}
}

// SetReporter installs a Reporter notified after each cycle.
func (s *Scheduler) SetReporter(r Reporter) {
	s.reporter = r
}

// Run starts a cycle immediately and then on every tick, blocking until ctx
// is cancelled and the in-flight cycle has returned.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("scheduler started", "interval", s.tick)
	defer s.wg.Wait()

	s.trigger(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.trigger(ctx)
		}
	}
}

// trigger starts a cycle unless the previous one is still running.
func (s *Scheduler) trigger(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn("previous cycle still running, skipping tick")
		metrics.CyclesSkipped.Inc()
		return false
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.running.Store(false)
		s.runCycle(ctx)
	}()
	return true
}

func (s *Scheduler) runCycle(ctx context.Context) {
	cycleCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res := s.cycler.RunCycle(cycleCtx)
	s.logResult(res)

	if s.reporter != nil {
		s.reporter.Report(ctx, res)
	}
}

func (s *Scheduler) logResult(res *pipeline.CycleResult) {
	if !res.OK() {
		s.log.Error("cycle failed", "outcome", res.Outcome, "error", res.Err, "duration", res.Duration)
		return
	}
	s.log.Info("cycle completed",
		"sessions", len(res.Sessions),
		"created", len(res.Created),
		"existing", len(res.Skipped),
		"failed", len(res.Failed),
		"warnings", res.Warnings,
		"duration", res.Duration,
	)
}
