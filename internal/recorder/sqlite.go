package recorder

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"MarketLens/internal/model"
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

	// WAL lets report readers query while a scheduled run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			symbols     TEXT NOT NULL,
			period      TEXT,
			interval    TEXT,
			row_count   INTEGER,
			first_date  TEXT,
			last_date   TEXT,
			latest_rate REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS summaries (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     INTEGER NOT NULL REFERENCES runs(id),
			symbol     TEXT NOT NULL,
			max_price  REAL,
			max_date   TEXT,
			mean_price REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_symbol ON summaries(symbol, run_id)`,

		`CREATE TABLE IF NOT EXISTS summary_failures (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			symbol TEXT NOT NULL,
			reason TEXT
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func formatDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.DateOnly), Valid: true}
}

// RecordRun stores the run and its per-symbol rows in one transaction.
func (r *SQLiteRecorder) RecordRun(run *RunRecord) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var rate sql.NullFloat64
	if run.LatestRate != nil {
		rate = sql.NullFloat64{Float64: *run.LatestRate, Valid: true}
	}
	res, err := tx.Exec(`INSERT INTO runs
		(timestamp, symbols, period, interval, row_count, first_date, last_date, latest_rate)
		VALUES (?,?,?,?,?,?,?,?)`,
		run.RanAt.Unix(), strings.Join(run.Symbols, ","), run.Period, run.Interval,
		run.Rows, formatDate(run.FirstDate), formatDate(run.LastDate), rate,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	for _, rec := range run.Records {
		if _, err := tx.Exec(`INSERT INTO summaries
			(run_id, symbol, max_price, max_date, mean_price)
			VALUES (?,?,?,?,?)`,
			runID, rec.Symbol, rec.MaxPrice, formatDate(rec.MaxDate), rec.MeanPrice,
		); err != nil {
			return 0, fmt.Errorf("insert summary %s: %w", rec.Symbol, err)
		}
	}
	for _, f := range run.Failures {
		if _, err := tx.Exec(`INSERT INTO summary_failures (run_id, symbol, reason) VALUES (?,?,?)`,
			runID, f.Symbol, f.Reason,
		); err != nil {
			return 0, fmt.Errorf("insert failure %s: %w", f.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// SymbolHistory returns the most recent summaries of symbol, newest first.
func (r *SQLiteRecorder) SymbolHistory(symbol string, limit int) ([]model.SummaryRecord, error) {
	rows, err := r.db.Query(`SELECT s.symbol, s.max_price, s.max_date, s.mean_price
		FROM summaries s JOIN runs ru ON ru.id = s.run_id
		WHERE s.symbol = ?
		ORDER BY ru.timestamp DESC, s.id DESC
		LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []model.SummaryRecord
	for rows.Next() {
		var rec model.SummaryRecord
		var maxDate sql.NullString
		if err := rows.Scan(&rec.Symbol, &rec.MaxPrice, &maxDate, &rec.MeanPrice); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if maxDate.Valid {
			if rec.MaxDate, err = time.Parse(time.DateOnly, maxDate.String); err != nil {
				return nil, fmt.Errorf("parse max date: %w", err)
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
