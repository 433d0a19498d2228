package recorder

import (
	"time"

	"StockStats/internal/model"
)

// RunEvent summarizes one pass over the ticker list.
type RunEvent struct {
	RunID      string
	Trigger    string // "cli" or "cron"
	StartedAt  time.Time
	FinishedAt time.Time
	Tickers    int
	Succeeded  int
}

// OutcomeEvent holds the result of processing one ticker within a run.
type OutcomeEvent struct {
	RunID  string
	Ticker string
	Status string
	Error  string
	Stats  *model.Stats // nil unless statistics were computed
}

// Recorder keeps a history of runs and per-ticker outcomes.
type Recorder interface {
	RecordRun(evt *RunEvent) error
	RecordOutcome(evt *OutcomeEvent) error
	Close() error
}
