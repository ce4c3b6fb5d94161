package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"stockwatch/internal/api"
	"stockwatch/internal/config"
	"stockwatch/internal/recorder"
	"stockwatch/internal/universe"
	"stockwatch/internal/view"
	"stockwatch/internal/watch"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] stockwatch starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init backend client
	client := api.New(cfg.Backend.BaseURL, api.WithProxy(cfg.Proxy))
	log.Printf("[INFO] backend: %s", cfg.Backend.BaseURL)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Probe the backend once. A dead backend is worth a warning, the
	// watcher keeps polling either way.
	probeCtx, probeCancel := context.WithTimeout(ctx, 5*time.Second)
	if err := client.Health(probeCtx); err != nil {
		log.Printf("[WARN] backend health check failed: %v", err)
	}
	probeCancel()

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	runID := uuid.NewString()
	log.Printf("[INFO] run id: %s", runID)

	// Symbol directory
	dir := universe.NewDirectory(ctx, client)
	if err := dir.Start(cfg.Directory.RefreshCron); err != nil {
		log.Fatalf("[FATAL] start directory: %v", err)
	}
	defer dir.Stop()

	// Initial selection
	sel, err := watch.NewSelection(cfg.Watch.Symbol, cfg.Watch.Interval)
	if err != nil {
		log.Fatalf("[FATAL] initial selection: %v", err)
	}

	// Fetcher: real backend or canned data
	var fetcher watch.Fetcher = client
	if cfg.Watch.Mock {
		log.Println("[INFO] using mock fetcher")
		fetcher = &watch.MockFetcher{Price: 100}
	}

	handler := watch.HandlerFunc(func(snap watch.Snapshot) {
		if snap.Loading() {
			return
		}
		fmt.Println(view.Render(snap))
		recordSnapshot(rec, runID, snap)
	})

	w := watch.New(watch.Config{
		Selection:    sel,
		PollInterval: time.Duration(cfg.Watch.PollSeconds) * time.Second,
	}, fetcher, handler)
	if err := w.Start(ctx); err != nil {
		log.Fatalf("[FATAL] start watcher: %v", err)
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		if err := w.Stop(stopCtx); err != nil {
			log.Printf("[ERROR] stop watcher: %v", err)
		}
	}()

	// Read commands from stdin
	go commandLoop(ctx, cancel, w, dir, rec, runID)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
	}()

	log.Println("[INFO] stockwatch is running. Type 'help' for commands, Ctrl+C to stop.")
	<-ctx.Done()
	log.Println("[INFO] stockwatch stopped")
}

const helpText = `commands:
  <SYMBOL> [interval]   watch a new symbol (e.g. "msft 15m")
  interval <value>      change the interval for the current symbol
  list                  show symbols the backend can serve
  help                  show this help
  quit                  exit
`

// commandLoop turns stdin lines into watcher commands.
func commandLoop(ctx context.Context, cancel context.CancelFunc, w *watch.Watcher, dir *universe.Directory, rec recorder.Recorder, runID string) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch strings.ToLower(fields[0]) {
		case "quit", "exit":
			cancel()
			return
		case "help":
			fmt.Print(helpText)
		case "list":
			fmt.Print(view.RenderListings(dir.Listings()))
		case "interval":
			if len(fields) < 2 {
				fmt.Println("usage: interval <1m|5m|15m|30m|60m|1d|1wk|1mo>")
				continue
			}
			cur := w.Snapshot().Selection
			applySelection(w, dir, rec, runID, cur.Symbol, fields[1])
		default:
			symbol := fields[0]
			interval := string(w.Snapshot().Selection.Interval)
			if len(fields) > 1 {
				interval = fields[1]
			}
			applySelection(w, dir, rec, runID, symbol, interval)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("[WARN] read commands: %v", err)
	}
}

func applySelection(w *watch.Watcher, dir *universe.Directory, rec recorder.Recorder, runID, symbol, interval string) {
	sel, err := watch.NewSelection(symbol, interval)
	if err != nil {
		fmt.Printf("bad selection: %v\n", err)
		return
	}
	// The directory may be empty when the backend was down at startup.
	if len(dir.Listings()) > 0 {
		if _, ok := dir.Lookup(sel.Symbol); !ok {
			fmt.Printf("note: %s is not in the symbol directory\n", sel.Symbol)
		}
	}
	if err := w.SetSelection(sel); err != nil {
		log.Printf("[WARN] set selection: %v", err)
		return
	}
	if err := rec.RecordSelection(&recorder.SelectionRecord{
		RunID:    runID,
		Symbol:   sel.Symbol,
		Interval: string(sel.Interval),
	}); err != nil {
		log.Printf("[ERROR] record selection: %v", err)
	}
}

// recordSnapshot persists terminal fetch outcomes. Loading snapshots
// are filtered out by the handler.
func recordSnapshot(rec recorder.Recorder, runID string, snap watch.Snapshot) {
	outcome := "success"
	bars := 0
	lastClose := 0.0
	if snap.Phase == watch.PhaseFailed {
		outcome = "failed"
	} else if snap.Data != nil {
		bars = len(snap.Data.History)
		if bars > 0 {
			lastClose = snap.Data.History[bars-1].Close
		}
	}

	if err := rec.RecordFetch(&recorder.FetchRecord{
		RunID:      runID,
		Symbol:     snap.Selection.Symbol,
		Period:     string(snap.Selection.Period()),
		Interval:   string(snap.Selection.Interval),
		Generation: snap.Generation,
		Outcome:    outcome,
		Bars:       bars,
		LastClose:  lastClose,
		Err:        snap.Err,
	}); err != nil {
		log.Printf("[ERROR] record fetch: %v", err)
	}
}
