package recorder

import (
	"path/filepath"
	"testing"
)

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	r, err := NewSQLiteRecorder(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	ok := &FetchRecord{
		RunID: "run-1", Symbol: "AAPL", Period: "1y", Interval: "1d",
		Generation: 1, Outcome: "success", Bars: 250, LastClose: 231.5,
	}
	if err := r.RecordFetch(ok); err != nil {
		t.Fatalf("record fetch: %v", err)
	}

	failed := &FetchRecord{
		RunID: "run-1", Symbol: "AAPL", Period: "1y", Interval: "1d",
		Generation: 2, Outcome: "failed", Err: "api error 500 Internal Server Error",
	}
	if err := r.RecordFetch(failed); err != nil {
		t.Fatalf("record fetch: %v", err)
	}

	if err := r.RecordSelection(&SelectionRecord{RunID: "run-1", Symbol: "MSFT", Interval: "15m"}); err != nil {
		t.Fatalf("record selection: %v", err)
	}

	var fetches int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM fetches`).Scan(&fetches); err != nil {
		t.Fatalf("count fetches: %v", err)
	}
	if fetches != 2 {
		t.Errorf("expected 2 fetch rows, got %d", fetches)
	}

	var outcome, errMsg string
	var lastClose float64
	err = r.db.QueryRow(`SELECT outcome, error, last_close FROM fetches WHERE generation = 2`).
		Scan(&outcome, &errMsg, &lastClose)
	if err != nil {
		t.Fatalf("query fetch: %v", err)
	}
	if outcome != "failed" || errMsg != failed.Err || lastClose != 0 {
		t.Errorf("unexpected row: outcome=%q error=%q last_close=%v", outcome, errMsg, lastClose)
	}

	var symbol, interval string
	if err := r.db.QueryRow(`SELECT symbol, interval FROM selections`).Scan(&symbol, &interval); err != nil {
		t.Fatalf("query selection: %v", err)
	}
	if symbol != "MSFT" || interval != "15m" {
		t.Errorf("unexpected selection row: %s %s", symbol, interval)
	}
}

func TestSQLiteRecorder_ReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	r, err := NewSQLiteRecorder(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rec := &FetchRecord{RunID: "run-1", Symbol: "AAPL", Outcome: "success", Bars: 1}
	if err := r.RecordFetch(rec); err != nil {
		t.Fatalf("record fetch: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening runs the migrations again; they must not disturb existing rows.
	r2, err := NewSQLiteRecorder(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r2.Close()

	var fetches int
	if err := r2.db.QueryRow(`SELECT COUNT(*) FROM fetches`).Scan(&fetches); err != nil {
		t.Fatalf("count fetches: %v", err)
	}
	if fetches != 1 {
		t.Errorf("expected 1 fetch row after reopen, got %d", fetches)
	}
}

func TestNoopRecorder(t *testing.T) {
	n := NewNoopRecorder()
	if err := n.RecordFetch(&FetchRecord{Symbol: "AAPL"}); err != nil {
		t.Errorf("record fetch: %v", err)
	}
	if err := n.RecordSelection(&SelectionRecord{Symbol: "AAPL"}); err != nil {
		t.Errorf("record selection: %v", err)
	}
	if err := n.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}
