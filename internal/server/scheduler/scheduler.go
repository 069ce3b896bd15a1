// Package scheduler runs the periodic background jobs: a store health probe
// feeding the gRPC health status and the index reconciler.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/freelancehub/internal/logging"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/directory"
	"github.com/robfig/cron/v3"
)

const probeTimeout = 5 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthSetter interface {
	SetServing(ok bool)
}

type Reindexer interface {
	Reindex(ctx context.Context) (*directory.ReindexReport, error)
}

// ReindexObserver receives the outcome of every reconciler run.
type ReindexObserver interface {
	ObserveReindex(err error)
	SetIndexSize(index string, n int)
}

// Scheduler wraps robfig/cron. Jobs never overlap with themselves.
type Scheduler struct {
	cron   *cron.Cron
	logger logging.Logger
}

func New(logger logging.Logger) *Scheduler {
	l := logger.With("module", "scheduler")
	cl := cronLogger{l: l}
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		logger: l,
	}
}

// AddHealthProbe pings the store every interval and publishes the result.
func (s *Scheduler) AddHealthProbe(ctx context.Context, interval time.Duration, p Pinger, h HealthSetter) error {
	if interval <= 0 {
		return nil
	}
	_, err := s.cron.AddFunc(every(interval), func() { ProbeHealth(ctx, p, h, s.logger) })
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	return nil
}

// AddReindex runs the index reconciler every interval.
func (s *Scheduler) AddReindex(ctx context.Context, interval time.Duration, r Reindexer, obs ReindexObserver) error {
	if interval <= 0 {
		return nil
	}
	_, err := s.cron.AddFunc(every(interval), func() { RunReindex(ctx, r, obs, s.logger) })
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info(context.Background(), "cron started", "jobs", len(s.cron.Entries()))
}

// Stop halts scheduling and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info(context.Background(), "cron stopped")
}

func every(d time.Duration) string {
	return "@every " + d.String()
}

// ProbeHealth pings once and updates h.
func ProbeHealth(ctx context.Context, p Pinger, h HealthSetter, logger logging.Logger) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		logger.Warn(ctx, "store unhealthy", "error", err)
		h.SetServing(false)
		return
	}
	h.SetServing(true)
}

// RunReindex runs one reconciler pass and reports it to obs.
func RunReindex(ctx context.Context, r Reindexer, obs ReindexObserver, logger logging.Logger) {
	rep, err := r.Reindex(ctx)
	if obs != nil {
		obs.ObserveReindex(err)
	}
	if err != nil {
		logger.Error(ctx, "reindex failed", "error", err)
		return
	}

	if obs != nil {
		obs.SetIndexSize("mobile", rep.Mobiles)
		for name, n := range rep.CategorySizes {
			obs.SetIndexSize("category:"+name, n)
		}
	}
}

// cronLogger adapts logging.Logger to cron.Logger.
type cronLogger struct {
	l logging.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug(context.Background(), msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error(context.Background(), msg, append(keysAndValues, "error", err)...)
}
