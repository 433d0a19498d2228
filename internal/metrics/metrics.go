package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Registry holds the Prometheus collectors for ticker processing.
type Registry struct {
	reg *prometheus.Registry

	Tickers       *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	LastRun       prometheus.Gauge
}

// NewRegistry creates collectors registered on a private registry.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		Tickers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockstats_tickers_total",
				Help: "Tickers processed, by outcome status",
			},
			[]string{"status"},
		),
		FetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stockstats_fetch_duration_seconds",
				Help:    "Duration of historical quote requests",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		LastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "stockstats_last_run_timestamp_seconds",
				Help: "Unix time the last run finished",
			},
		),
	}
	r.reg.MustRegister(r.Tickers, r.FetchDuration, r.LastRun)
	return r
}

// ObserveTicker counts one ticker outcome and its fetch duration.
func (r *Registry) ObserveTicker(status string, fetch time.Duration) {
	if r == nil {
		return
	}
	r.Tickers.WithLabelValues(status).Inc()
	if fetch > 0 {
		r.FetchDuration.Observe(fetch.Seconds())
	}
}

// ObserveRun records the completion time of a run.
func (r *Registry) ObserveRun(finished time.Time) {
	if r == nil {
		return
	}
	r.LastRun.Set(float64(finished.Unix()))
}

// Handler exposes /metrics and /healthz.
func (r *Registry) Handler() http.Handler {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return router
}

// Serve runs the metrics endpoint on addr until ctx is cancelled.
func (r *Registry) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("metrics endpoint listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
