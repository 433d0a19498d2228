package runner

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"StockStats/internal/collector"
	"StockStats/internal/metrics"
	"StockStats/internal/model"
	"StockStats/internal/notifier"
	"StockStats/internal/recorder"
	"StockStats/internal/store"
)

const (
	TriggerCLI  = "cli"
	TriggerCron = "cron"

	notifyTimeout = 10 * time.Second
)

// Notifier delivers a run summary.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Runner processes tickers one after another: collect, then upsert into the
// store file. A failing ticker never stops the ones after it.
type Runner struct {
	Collector *collector.Collector
	StorePath string
	Recorder  recorder.Recorder
	Notifier  Notifier          // optional
	Metrics   *metrics.Registry // optional
	Logger    zerolog.Logger
	Now       func() time.Time
}

// New creates a Runner with a no-op recorder and the global logger.
func New(col *collector.Collector, storePath string) *Runner {
	return &Runner{
		Collector: col,
		StorePath: storePath,
		Recorder:  recorder.NewNoopRecorder(),
		Logger:    log.Logger,
		Now:       time.Now,
	}
}

// Normalize trims and upper-cases a ticker symbol.
func Normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Run processes tickers in order on behalf of a command-line invocation.
func (r *Runner) Run(ctx context.Context, tickers []string) []model.Outcome {
	return r.run(ctx, TriggerCLI, tickers)
}

// RunScheduled processes tickers on behalf of the cron scheduler.
func (r *Runner) RunScheduled(ctx context.Context, tickers []string) []model.Outcome {
	return r.run(ctx, TriggerCron, tickers)
}

func (r *Runner) run(ctx context.Context, trigger string, tickers []string) []model.Outcome {
	runID := uuid.NewString()
	started := r.Now()
	logger := r.Logger.With().Str("run_id", runID).Logger()

	outcomes := make([]model.Outcome, 0, len(tickers))
	for _, raw := range tickers {
		if err := ctx.Err(); err != nil {
			logger.Warn().Err(err).Msg("run cancelled, remaining tickers not processed")
			break
		}
		o := r.processTicker(ctx, logger, raw)
		outcomes = append(outcomes, o)
		r.recordOutcome(logger, runID, o)
	}

	finished := r.Now()
	succeeded := 0
	for _, o := range outcomes {
		if o.Status == model.StatusOK {
			succeeded++
		}
	}
	if err := r.Recorder.RecordRun(&recorder.RunEvent{
		RunID:      runID,
		Trigger:    trigger,
		StartedAt:  started,
		FinishedAt: finished,
		Tickers:    len(outcomes),
		Succeeded:  succeeded,
	}); err != nil {
		logger.Error().Err(err).Msg("record run")
	}
	r.Metrics.ObserveRun(finished)

	if r.Notifier != nil && len(outcomes) > 0 {
		// detached: a cancelled run still reports what it finished
		sendCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		if err := r.Notifier.Send(sendCtx, notifier.FormatRunSummary(finished, outcomes)); err != nil {
			logger.Error().Err(err).Msg("send run summary")
		}
		cancel()
	}

	logger.Info().Int("tickers", len(outcomes)).Int("succeeded", succeeded).
		Dur("elapsed", finished.Sub(started)).Msg("run finished")
	return outcomes
}

func (r *Runner) processTicker(ctx context.Context, logger zerolog.Logger, raw string) model.Outcome {
	ticker := Normalize(raw)
	if ticker == "" {
		logger.Warn().Str("input", raw).Msg("empty ticker, skipping")
		o := model.Outcome{Ticker: raw, Status: model.StatusSkipped, Err: errors.New("empty ticker")}
		r.Metrics.ObserveTicker(string(o.Status), 0)
		return o
	}

	logger = logger.With().Str("ticker", ticker).Logger()
	logger.Info().Msg("fetching data")

	start := r.Now()
	rec, err := r.Collector.Collect(ctx, ticker)
	elapsed := r.Now().Sub(start)
	if err != nil {
		o := model.Outcome{Ticker: ticker, Err: err}
		switch {
		case errors.Is(err, collector.ErrUnexpectedShape):
			o.Status = model.StatusBadShape
			logger.Warn().Err(err).Msg("unexpected data format")
		case errors.Is(err, collector.ErrNoPrices):
			o.Status = model.StatusNoPrices
			logger.Warn().Msg("no valid closing prices found")
		default:
			o.Status = model.StatusFetchFailed
			logger.Error().Err(err).Msg("error fetching data")
		}
		r.Metrics.ObserveTicker(string(o.Status), elapsed)
		return o
	}

	stats := rec.Stats
	o := model.Outcome{Ticker: ticker, Status: model.StatusOK, Stats: &stats}

	st := store.Load(r.StorePath)
	st.Upsert(*rec)
	if err := st.Save(); err != nil {
		o.Status = model.StatusSaveFailed
		o.Err = err
		logger.Error().Err(err).Str("path", r.StorePath).Msg("error saving stats")
	} else {
		logger.Info().
			Float64("min", stats.Min).
			Float64("max", stats.Max).
			Float64("avg", stats.Avg).
			Float64("median", stats.Median).
			Msg("stats saved")
	}
	r.Metrics.ObserveTicker(string(o.Status), elapsed)
	return o
}

func (r *Runner) recordOutcome(logger zerolog.Logger, runID string, o model.Outcome) {
	evt := &recorder.OutcomeEvent{
		RunID:  runID,
		Ticker: o.Ticker,
		Status: string(o.Status),
		Stats:  o.Stats,
	}
	if o.Err != nil {
		evt.Error = o.Err.Error()
	}
	if err := r.Recorder.RecordOutcome(evt); err != nil {
		logger.Error().Err(err).Str("ticker", o.Ticker).Msg("record outcome")
	}
}
