package recorder

// FetchRecord holds the outcome of one fetch cycle.
type FetchRecord struct {
	RunID      string
	Symbol     string
	Period     string
	Interval   string
	Generation uint64
	Outcome    string // "success" or "failed"
	Bars       int
	LastClose  float64
	Err        string
}

// SelectionRecord holds one user-driven selection change.
type SelectionRecord struct {
	RunID    string
	Symbol   string
	Interval string
}

// Recorder persists watch history for later analysis.
type Recorder interface {
	RecordFetch(rec *FetchRecord) error
	RecordSelection(rec *SelectionRecord) error
	Close() error
}
