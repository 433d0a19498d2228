package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockStats/internal/model"
)

func TestFormatRunSummary(t *testing.T) {
	at := time.Date(2026, time.October, 19, 16, 30, 0, 0, time.UTC)
	msg := FormatRunSummary(at, []model.Outcome{
		{Ticker: "AAPL", Status: model.StatusOK, Stats: &model.Stats{Min: 1, Max: 3, Avg: 2, Median: 2.5}},
		{Ticker: "ZZZZ", Status: model.StatusFetchFailed, Err: errors.New("status <404>")},
	})

	assert.Contains(t, msg, "2026-10-19 16:30")
	assert.Contains(t, msg, "1/2 tickers updated")
	assert.Contains(t, msg, "<b>AAPL</b> min 1.00 | max 3.00 | avg 2.00 | median 2.50")
	assert.Contains(t, msg, "status &lt;404&gt;")
}

func TestTelegramNotifier_Send(t *testing.T) {
	var payload map[string]string
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&payload)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = srv.URL
	require.NoError(t, n.Send(context.Background(), "hello"))

	assert.Equal(t, "/botTOKEN/sendMessage", path)
	assert.Equal(t, "42", payload["chat_id"])
	assert.Equal(t, "hello", payload["text"])
	assert.Equal(t, "HTML", payload["parse_mode"])
}

func TestTelegramNotifier_SendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = srv.URL
	err := n.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
