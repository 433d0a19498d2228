package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"StockStats/internal/model"
)

// Job is the work run on every tick.
type Job interface {
	RunScheduled(ctx context.Context, tickers []string) []model.Outcome
}

// Scheduler re-runs the ticker list on a cron schedule.
type Scheduler struct {
	Cron    *cron.Cron
	Job     Job
	Tickers []string
	Ctx     context.Context

	running sync.Mutex
}

// NewScheduler creates a Scheduler. A tick that fires while the previous run
// is still in progress is skipped.
func NewScheduler(ctx context.Context, job Job, tickers []string) *Scheduler {
	logger := cronLogger{log.Logger}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		Job:     job,
		Tickers: tickers,
		Ctx:     ctx,
	}
}

// Register adds the collection task under spec (six fields, seconds first).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.RunNow); err != nil {
		return fmt.Errorf("register collect task: %w", err)
	}
	log.Info().Str("schedule", spec).Strs("tickers", s.Tickers).Msg("collect task registered")
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes one collection pass immediately. It is a no-op while
// another pass, manual or scheduled, is still in progress.
func (s *Scheduler) RunNow() {
	if s.Ctx.Err() != nil {
		return
	}
	if !s.running.TryLock() {
		log.Warn().Msg("previous run still in progress, skipping")
		return
	}
	defer s.running.Unlock()
	s.Job.RunScheduled(s.Ctx, s.Tickers)
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	l zerolog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
