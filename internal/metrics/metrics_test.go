package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveTicker(t *testing.T) {
	r := NewRegistry()
	r.ObserveTicker("ok", 200*time.Millisecond)
	r.ObserveTicker("ok", 0)
	r.ObserveTicker("fetch_failed", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Tickers.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Tickers.WithLabelValues("fetch_failed")))
}

func TestNilRegistryIsSafe(t *testing.T) {
	var r *Registry
	r.ObserveTicker("ok", time.Second)
	r.ObserveRun(time.Now())
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.ObserveRun(time.Unix(1700000000, 0))
	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "stockstats_last_run_timestamp_seconds 1.7e+09")

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
