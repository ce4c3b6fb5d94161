package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists watch history to a SQLite database.
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

	// WAL mode so analysis tools can read while the watcher writes.
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
		`CREATE TABLE IF NOT EXISTS fetches (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			run_id     TEXT,
			symbol     TEXT,
			period     TEXT,
			interval   TEXT,
			generation INTEGER,
			outcome    TEXT,
			bars       INTEGER,
			last_close REAL,
			error      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetches_ts ON fetches(timestamp)`,

		`CREATE TABLE IF NOT EXISTS selections (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			run_id    TEXT,
			symbol    TEXT,
			interval  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_selections_ts ON selections(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordFetch(rec *FetchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetches
		(timestamp, run_id, symbol, period, interval, generation, outcome, bars, last_close, error)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.RunID, rec.Symbol, rec.Period, rec.Interval,
		rec.Generation, rec.Outcome, rec.Bars, rec.LastClose, rec.Err,
	)
	return err
}

func (r *SQLiteRecorder) RecordSelection(rec *SelectionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO selections
		(timestamp, run_id, symbol, interval)
		VALUES (?,?,?,?)`,
		time.Now().Unix(), rec.RunID, rec.Symbol, rec.Interval,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
