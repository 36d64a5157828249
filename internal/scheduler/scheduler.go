package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ChainSentinel/internal/collector"
	"ChainSentinel/internal/notifier"
	"ChainSentinel/internal/recorder"
	"ChainSentinel/internal/report"
)

// Scheduler drives periodic and user-triggered refresh passes.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Ctx       context.Context

	mu          sync.Mutex
	lastRefresh time.Time
	lastErr     error

	logger zerolog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Notifier:  tn,
		Recorder:  rec,
		Ctx:       ctx,
		logger:    log.With().Str("component", "scheduler").Logger(),
	}
}

// Register registers the periodic refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.logger.Info().Msg("scheduler stopped")
}

// RunNow executes a refresh pass immediately (manual trigger /
// RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	s.logger.Info().Msg("running refresh pass")

	res, err := s.Collector.Collect(s.Ctx)
	s.mu.Lock()
	s.lastRefresh = time.Now()
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error().Err(err).Msg("refresh pass failed")
		s.trySend(notifier.FormatFetchFailure(err))
		return
	}

	rep := report.Assemble(res, s.Collector.Opts.Asset, s.Collector.Opts.Currency)
	s.trySend(notifier.FormatReport(rep))

	if err := s.Recorder.RecordRefresh(rep); err != nil {
		s.logger.Error().Err(err).Msg("record refresh")
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/refresh", "/start":
		go s.refreshTask()
		return "🔄 refreshing..."
	case "/status":
		s.mu.Lock()
		last, lastErr := s.lastRefresh, s.lastErr
		s.mu.Unlock()
		return notifier.FormatStatus(s.Collector.Opts.Asset, last, lastErr)
	default:
		return "commands:\n• /refresh - recompute the signal table\n• /status - last refresh state"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 30*time.Second); err != nil {
		s.logger.Error().Err(err).Msg("send notification")
	}
}
