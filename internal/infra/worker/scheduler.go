package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Reloader re-reads the catalog from the durable store.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Scheduler triggers Reloader.Reload on a cron schedule. Runs never
// overlap: a tick that fires while a reload is still running is skipped.
type Scheduler struct {
	cron     *cron.Cron
	reloader Reloader
	cfg      ReloadConfig
	metrics  *ReloadMetrics
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler validates cfg and registers the reload job. The scheduler
// is idle until Start.
func NewScheduler(reloader Reloader, cfg ReloadConfig, metrics *ReloadMetrics, logger *slog.Logger) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		reloader: reloader,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
	}
	if _, err := s.cron.AddFunc(cfg.Schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("add reload job: %w", err)
	}
	return s, nil
}

// Start begins firing the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("reload scheduler started",
		slog.String("schedule", s.cfg.Schedule),
		slog.String("timezone", s.cfg.Timezone),
		slog.Duration("timeout", s.cfg.Timeout))
}

// Stop halts the schedule and waits for a running reload to finish or ctx
// to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("reload scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stop reload scheduler: %w", ctx.Err())
	}
}

// RunOnce performs one bounded reload. It reports whether the reload ran
// and succeeded; an overlapping call is skipped and reports false.
func (s *Scheduler) RunOnce(parent context.Context) bool {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.metrics.RecordJobRun("skipped")
		s.logger.Warn("reload still running, tick skipped")
		return false
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	start := time.Now()
	s.metrics.RecordJobRun("started")

	// リロードのタイムアウト
	ctx, cancel := context.WithTimeout(parent, s.cfg.Timeout)
	defer cancel()

	if err := s.reloader.Reload(ctx); err != nil {
		s.metrics.RecordJobRun("failure")
		s.logger.Error("scheduled reload failed",
			slog.Any("error", err),
			slog.Duration("duration", time.Since(start)))
		return false
	}

	s.metrics.RecordJobRun("success")
	s.metrics.RecordLastSuccess()
	s.logger.Info("scheduled reload completed", slog.Duration("duration", time.Since(start)))
	return true
}
