// Package pipeline runs one scrape-then-reconcile cycle.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"discussion_bot/internal/metrics"
	"discussion_bot/internal/model"
	"discussion_bot/internal/reconcile"
	"discussion_bot/internal/scraper"
)

// ErrNoSessions is returned when the page parsed but listed no sessions.
var ErrNoSessions = errors.New("no sessions found")

// Scraper produces the sessions announced on the source page.
type Scraper interface {
	Scrape(ctx context.Context) (*scraper.Result, error)
}

// Channels is the channel-management API of the workspace.
type Channels interface {
	ListChannels(ctx context.Context) ([]model.Channel, error)
	CreateChannel(ctx context.Context, req model.CreateChannelRequest) (model.Channel, error)
}

// Options configures how a cycle executes create requests.
type Options struct {
	CategoryID string
	// Concurrency bounds the number of create calls in flight.
	Concurrency int
	// CreateInterval is the minimum spacing between create calls.
	CreateInterval time.Duration
}

// Pipeline wires the scraper, the reconciler and the channel API together.
type Pipeline struct {
	scraper  Scraper
	channels Channels
	opts     Options
	limiter  *rate.Limiter
	log      *slog.Logger
}

// New creates a Pipeline.
func New(s Scraper, channels Channels, opts Options, log *slog.Logger) *Pipeline {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	limit := rate.Inf
	if opts.CreateInterval > 0 {
		limit = rate.Every(opts.CreateInterval)
	}
	return &Pipeline{
		scraper:  s,
		channels: channels,
		opts:     opts,
		limiter:  rate.NewLimiter(limit, 1),
		log:      log,
	}
}

// RunCycle performs fetch, parse, reconcile and create in order.
// It never panics on per-cycle failures; they are reported in the result.
func (p *Pipeline) RunCycle(ctx context.Context) *CycleResult {
	start := time.Now()
	res := p.run(ctx)
	res.Duration = time.Since(start)
	metrics.Cycles.WithLabelValues(string(res.Outcome)).Inc()
	return res
}

func (p *Pipeline) run(ctx context.Context) *CycleResult {
	scraped, err := p.scraper.Scrape(ctx)
	if err != nil {
		return failed(classify(err), fmt.Errorf("scrape sessions: %w", err))
	}

	res := &CycleResult{
		Sessions: scraped.Sessions,
		Warnings: len(scraped.Warnings),
	}
	metrics.SessionsScraped.Add(float64(len(scraped.Sessions)))
	metrics.PartialSessions.Add(float64(len(scraped.Warnings)))

	if len(scraped.Sessions) == 0 {
		res.Outcome = OutcomeNoSessions
		res.Err = ErrNoSessions
		return res
	}
	p.log.Info("found sessions", "count", len(scraped.Sessions))

	existing, err := p.channels.ListChannels(ctx)
	if err != nil {
		res.Outcome = OutcomeListFailed
		res.Err = fmt.Errorf("list channels: %w", err)
		return res
	}

	plan := reconcile.Reconcile(existing, scraped.Sessions, p.opts.CategoryID)
	for _, s := range plan.Skip {
		p.log.Info("channel already exists", "title", s.Session.Title, "channel", s.Channel.Name)
	}
	res.Skipped = plan.Skip
	metrics.Channels.WithLabelValues("exists").Add(float64(len(plan.Skip)))

	for _, cr := range p.execute(ctx, plan.Create) {
		if cr.Err != nil {
			res.Failed = append(res.Failed, cr)
			continue
		}
		res.Created = append(res.Created, cr.Channel)
	}

	res.Outcome = OutcomeOK
	return res
}

// execute issues every request without waiting for earlier ones to finish.
// Failures are collected per request; nothing is rolled back.
func (p *Pipeline) execute(ctx context.Context, reqs []model.CreateChannelRequest) []CreateResult {
	results := make([]CreateResult, len(reqs))

	var g errgroup.Group
	g.SetLimit(p.opts.Concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			results[i] = p.create(ctx, req)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (p *Pipeline) create(ctx context.Context, req model.CreateChannelRequest) CreateResult {
	cr := CreateResult{Request: req}
	if err := p.limiter.Wait(ctx); err != nil {
		cr.Err = fmt.Errorf("wait for rate limiter: %w", err)
		p.log.Error("create channel", "name", req.Name, "error", cr.Err)
		metrics.Channels.WithLabelValues("failed").Inc()
		return cr
	}

	ch, err := p.channels.CreateChannel(ctx, req)
	if err != nil {
		cr.Err = err
		p.log.Error("create channel", "name", req.Name, "error", err)
		metrics.Channels.WithLabelValues("failed").Inc()
		return cr
	}

	cr.Channel = ch
	p.log.Info("created channel", "name", ch.Name, "id", ch.ID)
	metrics.Channels.WithLabelValues("created").Inc()
	return cr
}

func failed(outcome Outcome, err error) *CycleResult {
	return &CycleResult{Outcome: outcome, Err: err}
}

func classify(err error) Outcome {
	var parseErr *scraper.ParseError
	switch {
	case errors.Is(err, scraper.ErrMissingConfiguration):
		return OutcomeMissingConfig
	case errors.As(err, &parseErr):
		return OutcomeParseFailed
	default:
		return OutcomeFetchFailed
	}
}
