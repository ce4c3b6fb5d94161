package watch

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"stockwatch/internal/model"
)

// DefaultPollInterval is how often the current selection is re-fetched.
const DefaultPollInterval = 30 * time.Second

// Fetcher loads price history for one symbol.
type Fetcher interface {
	StockData(ctx context.Context, symbol string, period model.Period, interval model.Interval) (*model.StockHistory, error)
}

// Handler receives every snapshot the watcher publishes.
type Handler interface {
	HandleSnapshot(snap Snapshot)
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(Snapshot)

func (f HandlerFunc) HandleSnapshot(s Snapshot) { f(s) }

// Config holds watcher configuration.
type Config struct {
	Selection    Selection     // initial symbol/interval
	PollInterval time.Duration // re-fetch period (default: 30s)
}

type fetchResult struct {
	gen  uint64
	data *model.StockHistory
	err  error
}

// Watcher follows one selection: it fetches immediately on start and
// on every selection change, re-fetches on a fixed timer, and
// publishes a Snapshot to its handler after each transition. The
// timer is owned by the run loop and released when the loop exits.
type Watcher struct {
	fetcher Fetcher
	handler Handler
	poll    time.Duration

	mu   sync.Mutex
	snap Snapshot

	// Owned by the run loop once started.
	sel Selection
	gen uint64

	selCh   chan Selection
	results chan fetchResult

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Watcher. The handler may be nil.
func New(cfg Config, fetcher Fetcher, handler Handler) *Watcher {
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Watcher{
		fetcher: fetcher,
		handler: handler,
		poll:    poll,
		sel:     cfg.Selection,
		snap:    Snapshot{Phase: PhaseIdle, Selection: cfg.Selection},
		selCh:   make(chan Selection),
		results: make(chan fetchResult),
	}
}

// Start begins the poll loop with the configured selection.
func (w *Watcher) Start(ctx context.Context) error {
	if w.fetcher == nil {
		return errors.New("fetcher is required")
	}
	if w.sel.Symbol == "" {
		return errors.New("selection symbol is required")
	}
	w.ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go w.run()

	log.Printf("[INFO] Watcher started: %s, poll interval %s", w.sel, w.poll)
	return nil
}

// Stop shuts the watcher down and waits for the loop and any in-flight
// fetch to finish. No fetch is issued after Stop returns.
func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.cancel()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Printf("[INFO] Watcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetSelection switches the watcher to a new symbol/interval. The
// current data is dropped, a fetch is issued immediately and the poll
// timer restarts. Re-selecting the current selection is a no-op.
func (w *Watcher) SetSelection(sel Selection) error {
	if w.ctx == nil {
		return errors.New("watcher not started")
	}
	select {
	case w.selCh <- sel:
		return nil
	case <-w.ctx.Done():
		return w.ctx.Err()
	}
}

// Snapshot returns the last published state.
func (w *Watcher) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snap
}

// run owns the poll timer and the selection/generation fields. All
// transitions happen on this goroutine.
func (w *Watcher) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()

	// Fetch immediately on start.
	w.beginFetch()

	for {
		select {
		case <-w.ctx.Done():
			return
		case sel := <-w.selCh:
			if sel == w.sel {
				continue
			}
			w.sel = sel
			ticker.Reset(w.poll)
			w.beginFetch()
		case <-ticker.C:
			w.beginFetch()
		case res := <-w.results:
			w.apply(res)
		}
	}
}

// beginFetch publishes the loading state and launches a fetch for the
// current selection. Each fetch carries a generation number so a
// result from a superseded request is dropped instead of racing the
// latest one.
func (w *Watcher) beginFetch() {
	w.gen++
	gen := w.gen
	sel := w.sel

	w.publish(newLoading(sel, gen, time.Now()))

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		data, err := w.fetcher.StockData(w.ctx, sel.Symbol, sel.Period(), sel.Interval)
		select {
		case w.results <- fetchResult{gen: gen, data: data, err: err}:
		case <-w.ctx.Done():
		}
	}()
}

// apply folds a fetch result into the published snapshot.
func (w *Watcher) apply(res fetchResult) {
	if res.gen != w.gen {
		log.Printf("[INFO] Dropping stale result for generation %d (latest %d)", res.gen, w.gen)
		return
	}

	snap := w.Snapshot()
	if res.err != nil {
		log.Printf("[WARN] Fetch failed for %s: %v", snap.Selection, res.err)
		w.publish(snap.fail(res.err.Error(), time.Now()))
		return
	}

	bars := 0
	if res.data != nil {
		bars = len(res.data.History)
	}
	log.Printf("[INFO] Fetched %d bars for %s", bars, snap.Selection)
	w.publish(snap.succeed(res.data, time.Now()))
}

func (w *Watcher) publish(snap Snapshot) {
	w.mu.Lock()
	w.snap = snap
	w.mu.Unlock()

	if w.handler != nil {
		w.handler.HandleSnapshot(snap)
	}
}
