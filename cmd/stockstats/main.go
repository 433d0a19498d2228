package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockStats/internal/collector"
	"StockStats/internal/config"
	"StockStats/internal/logger"
	"StockStats/internal/metrics"
	"StockStats/internal/notifier"
	"StockStats/internal/recorder"
	"StockStats/internal/runner"
	"StockStats/internal/scheduler"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	storePath  string
	watch      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{configPath: "configs/config.yaml"}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		opts.configPath = v
	}

	cmd := &cobra.Command{
		Use:   "stockstats [TICKER ...]",
		Short: "Fetch historical closing prices and store summary statistics per ticker",
		Long: "stockstats downloads the historical quotes of each ticker from the Nasdaq API,\n" +
			"computes min, max, mean and median of the closing prices and upserts them\n" +
			"into a JSON file. Tickers are processed one at a time; a failing ticker\n" +
			"does not stop the others.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", opts.configPath, "path to the YAML config file")
	cmd.Flags().StringVar(&opts.storePath, "store", "", "stats file to update (overrides store.path)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "keep running and refresh the tickers on schedule.cron")
	return cmd
}

func run(ctx context.Context, opts *options, tickers []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.storePath != "" {
		cfg.Store.Path = opts.storePath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if err := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	fetcher := collector.NewNasdaqFetcher(cfg.DataSource.BaseURL, cfg.DataSource.Timeout, cfg.Proxy)
	r := runner.New(collector.NewCollector(fetcher, cfg.Lookback()), cfg.Store.Path)

	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, history disabled")
		} else {
			r.Recorder = sr
			defer sr.Close()
		}
	}
	if cfg.Telegram.BotToken != "" {
		r.Notifier = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}

	if !opts.watch {
		r.Run(ctx, tickers)
		return nil
	}
	return watch(ctx, cfg, r, tickers)
}

func watch(ctx context.Context, cfg *config.Config, r *runner.Runner, tickers []string) error {
	if len(tickers) == 0 {
		return fmt.Errorf("--watch needs at least one ticker")
	}

	if cfg.Metrics.Addr != "" {
		r.Metrics = metrics.NewRegistry()
		go func() {
			if err := r.Metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.Error().Err(err).Msg("metrics endpoint stopped")
			}
		}()
	}

	sched := scheduler.NewScheduler(ctx, r, tickers)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	log.Info().Msg("running initial collection")
	sched.RunNow()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping")
	return nil
}
