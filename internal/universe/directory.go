package universe

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"stockwatch/internal/api"
	"stockwatch/internal/model"

	"github.com/robfig/cron/v3"
)

// Lister provides the backend's symbol directory.
type Lister interface {
	List(ctx context.Context) ([]model.Listing, error)
}

// Directory caches the symbols the backend can serve and refreshes
// the cache on a cron schedule. A failed refresh keeps the old cache.
type Directory struct {
	lister Lister
	cron   *cron.Cron
	ctx    context.Context

	mu       sync.RWMutex
	listings []model.Listing
	updated  time.Time
}

// NewDirectory creates a Directory around a Lister (normally *api.Client).
func NewDirectory(ctx context.Context, lister Lister) *Directory {
	return &Directory{
		lister: lister,
		cron:   cron.New(cron.WithSeconds()),
		ctx:    ctx,
	}
}

// Start loads the directory once and schedules refreshes. refreshSpec
// is a six-field cron expression.
func (d *Directory) Start(refreshSpec string) error {
	if err := d.Refresh(); err != nil {
		log.Printf("[WARN] Initial directory load failed: %v", err)
	}

	if _, err := d.cron.AddFunc(refreshSpec, func() {
		if err := d.Refresh(); err != nil {
			log.Printf("[WARN] Directory refresh failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("register directory refresh: %w", err)
	}

	d.cron.Start()
	log.Println("[INFO] directory refresh scheduled")
	return nil
}

// Stop stops the refresh schedule.
func (d *Directory) Stop() {
	d.cron.Stop()
	log.Println("[INFO] directory refresh stopped")
}

// Refresh reloads the listings from the backend.
func (d *Directory) Refresh() error {
	listings, err := d.lister.List(d.ctx)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.listings = listings
	d.updated = time.Now()
	d.mu.Unlock()

	log.Printf("[INFO] Directory refreshed: %d symbols", len(listings))
	return nil
}

// Listings returns a copy of the cached directory.
func (d *Directory) Listings() []model.Listing {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]model.Listing, len(d.listings))
	copy(out, d.listings)
	return out
}

// Lookup finds a listing by symbol, ignoring case and whitespace.
func (d *Directory) Lookup(symbol string) (model.Listing, bool) {
	sym := api.NormalizeSymbol(symbol)

	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, l := range d.listings {
		if strings.EqualFold(l.Symbol, sym) {
			return l, true
		}
	}
	return model.Listing{}, false
}

// UpdatedAt reports when the cache last refreshed successfully.
func (d *Directory) UpdatedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.updated
}
