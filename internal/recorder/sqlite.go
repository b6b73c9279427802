package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/strategy"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists signal history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so readers (dashboards, -history) do not block the scheduled writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signals (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			symbol        TEXT NOT NULL,
			record_time   TEXT,
			signal_type   TEXT NOT NULL,
			confidence    INTEGER NOT NULL,
			price         REAL,
			bullish_votes INTEGER,
			bearish_votes INTEGER,
			reasons       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ts ON signals(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_symbol ON signals(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordSignal stores one signal for symbol
func (r *SQLiteRecorder) RecordSignal(ctx context.Context, symbol string, signal strategy.TradingSignal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reasons, err := json.Marshal(signal.Reasons)
	if err != nil {
		return fmt.Errorf("encode reasons: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO signals
		(timestamp, symbol, record_time, signal_type, confidence, price,
		 bullish_votes, bearish_votes, reasons)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UnixMilli(), symbol, signal.Time, string(signal.Type), signal.Confidence,
		signal.Price, signal.BullishVotes, signal.BearishVotes, string(reasons))
	if err != nil {
		return fmt.Errorf("insert signal: %w", err)
	}
	return nil
}

// Recent returns up to limit signals, newest first
func (r *SQLiteRecorder) Recent(ctx context.Context, limit int) ([]SignalRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, timestamp, symbol, record_time, signal_type,
		confidence, price, bullish_votes, bearish_votes, reasons
		FROM signals ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()

	var records []SignalRecord
	for rows.Next() {
		var rec SignalRecord
		var ts int64
		var signalType, reasons string
		if err := rows.Scan(&rec.ID, &ts, &rec.Symbol, &rec.Time, &signalType,
			&rec.Confidence, &rec.Price, &rec.BullishVotes, &rec.BearishVotes, &reasons); err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		rec.RecordedAt = time.UnixMilli(ts).UTC()
		rec.Type = strategy.SignalType(signalType)
		if reasons != "" {
			if err := json.Unmarshal([]byte(reasons), &rec.Reasons); err != nil {
				return nil, fmt.Errorf("decode reasons: %w", err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.db.Close()
}
