package watch

import (
	"errors"
	"time"

	"stockwatch/internal/api"
	"stockwatch/internal/model"
)

// Phase is the watcher's position in the fetch lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Selection is the symbol/interval pair the watcher is following.
type Selection struct {
	Symbol   string
	Interval model.Interval
}

// NewSelection builds a Selection from raw user input. The symbol is
// trimmed and uppercased, the interval validated against the known set.
func NewSelection(symbol, interval string) (Selection, error) {
	sym := api.NormalizeSymbol(symbol)
	if sym == "" {
		return Selection{}, errors.New("ticker symbol is required")
	}
	iv, err := model.ParseInterval(interval)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Symbol: sym, Interval: iv}, nil
}

// Period returns the lookback window requested for this selection.
func (s Selection) Period() model.Period { return model.PeriodFor(s.Interval) }

func (s Selection) String() string { return s.Symbol + " @ " + string(s.Interval) }

// Snapshot is one published state of the watcher. Snapshots are plain
// values: a new one replaces the old wholesale on every transition.
type Snapshot struct {
	Phase      Phase
	Selection  Selection
	Data       *model.StockHistory
	Err        string
	Generation uint64
	UpdatedAt  time.Time
}

// Loading reports whether a fetch is in flight.
func (s Snapshot) Loading() bool { return s.Phase == PhaseLoading }

// newLoading is the transition into a fresh fetch. Previous data and
// error are dropped here, so a snapshot never mixes results from two
// selections or two poll cycles.
func newLoading(sel Selection, gen uint64, now time.Time) Snapshot {
	return Snapshot{
		Phase:      PhaseLoading,
		Selection:  sel,
		Generation: gen,
		UpdatedAt:  now,
	}
}

// succeed is the Loading -> Success transition.
func (s Snapshot) succeed(data *model.StockHistory, now time.Time) Snapshot {
	next := s
	next.Phase = PhaseSuccess
	next.Data = data
	next.Err = ""
	next.UpdatedAt = now
	return next
}

// fail is the Loading -> Failed transition. Data stays cleared so a
// failed fetch never shows bars from an earlier cycle.
func (s Snapshot) fail(msg string, now time.Time) Snapshot {
	next := s
	next.Phase = PhaseFailed
	next.Data = nil
	next.Err = msg
	next.UpdatedAt = now
	return next
}
