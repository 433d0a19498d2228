package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Debug().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id      TEXT PRIMARY KEY,
			trigger_by  TEXT,
			started_at  INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			tickers     INTEGER,
			succeeded   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS ticker_outcomes (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			timestamp   INTEGER NOT NULL,
			ticker      TEXT NOT NULL,
			status      TEXT NOT NULL,
			error       TEXT,
			min_close   REAL,
			max_close   REAL,
			avg_close   REAL,
			median      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_ticker ON ticker_outcomes(ticker, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(evt *RunEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO runs
		(run_id, trigger_by, started_at, finished_at, tickers, succeeded)
		VALUES (?,?,?,?,?,?)`,
		evt.RunID, evt.Trigger, evt.StartedAt.Unix(), evt.FinishedAt.Unix(),
		evt.Tickers, evt.Succeeded,
	)
	return err
}

func (r *SQLiteRecorder) RecordOutcome(evt *OutcomeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var low, high, avg, median sql.NullFloat64
	if evt.Stats != nil {
		low = sql.NullFloat64{Float64: evt.Stats.Min, Valid: true}
		high = sql.NullFloat64{Float64: evt.Stats.Max, Valid: true}
		avg = sql.NullFloat64{Float64: evt.Stats.Avg, Valid: true}
		median = sql.NullFloat64{Float64: evt.Stats.Median, Valid: true}
	}

	_, err := r.db.Exec(`INSERT INTO ticker_outcomes
		(run_id, timestamp, ticker, status, error, min_close, max_close, avg_close, median)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		evt.RunID, time.Now().Unix(), evt.Ticker, evt.Status, evt.Error,
		low, high, avg, median,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Debug().Msg("closing sqlite recorder")
	return r.db.Close()
}
