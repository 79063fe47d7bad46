// Package trendwatch maintains the passive "trends" panel: an in-memory
// snapshot of recent records per tracked sector, refreshed by a background
// loop. Snapshots are replaced wholesale, never mutated in place, so a
// reader sees either the entirely old or entirely new contents.
package trendwatch

import (
	"context"
	"sync"
	"time"

	"github.com/Mnafierce/agentwatch/internal/core"
	"github.com/Mnafierce/agentwatch/internal/logger"
	"github.com/Mnafierce/agentwatch/internal/report"
)

// DefaultInterval matches the production deployment's refresh cadence.
const DefaultInterval = 2 * time.Hour

// sectorQueries fixes the keyword expression used for each tracked sector.
var sectorQueries = map[string]string{
	"Santé":     "autonomous AI agents healthcare",
	"Finance":   "autonomous AI agents finance",
	"Éducation": "autonomous AI agents education",
	"Retail":    "autonomous AI agents retail",
}

// TrackedSectors returns the sector keys refreshed by the watcher, in the
// dashboard's display order.
func TrackedSectors() []string {
	ordered := make([]string, 0, len(sectorQueries))
	for _, s := range core.Sectors {
		if _, ok := sectorQueries[s]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered
}

// Watcher owns the trends snapshot. It is the single writer; the rendering
// layer only reads through Snapshot.
type Watcher struct {
	preprints  report.PreprintSearcher
	news       report.NewsSearcher
	interval   time.Duration
	maxResults int

	mu       sync.RWMutex
	snapshot *core.TrendsSnapshot
}

// New creates a watcher over the given adapters. interval <= 0 falls back
// to DefaultInterval.
func New(preprints report.PreprintSearcher, newsSearcher report.NewsSearcher, interval time.Duration, maxResults int) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Watcher{
		preprints:  preprints,
		news:       newsSearcher,
		interval:   interval,
		maxResults: maxResults,
		snapshot:   &core.TrendsSnapshot{Sectors: map[string][]core.SourceRecord{}},
	}
}

// Snapshot returns the current snapshot. The returned structure must be
// treated as read-only.
func (w *Watcher) Snapshot() *core.TrendsSnapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshot
}

// RefreshNow rebuilds the snapshot for every tracked sector and swaps it in
// atomically. A failed fetch degrades that sector's entry to empty; the
// other sectors and the update timestamp still advance.
func (w *Watcher) RefreshNow(ctx context.Context) {
	next := &core.TrendsSnapshot{
		Sectors:    make(map[string][]core.SourceRecord, len(sectorQueries)),
		LastUpdate: time.Now(),
	}

	for _, sector := range TrackedSectors() {
		query := sectorQueries[sector]
		var records []core.SourceRecord

		preprints, err := w.preprints.Search(ctx, query, w.maxResults)
		if err != nil {
			logger.Warn("trends preprint refresh failed", "sector", sector, "error", err.Error())
		} else {
			records = append(records, preprints...)
		}

		newsResults, err := w.news.Search(ctx, query, w.maxResults)
		if err != nil {
			logger.Warn("trends news refresh failed", "sector", sector, "error", err.Error())
		} else {
			records = append(records, newsResults...)
		}

		next.Sectors[sector] = records
	}

	w.mu.Lock()
	w.snapshot = next
	w.mu.Unlock()

	logger.Info("trends snapshot refreshed", "sectors", len(next.Sectors))
}

// Start launches the background refresh loop. The loop performs an initial
// refresh immediately, then ticks on the configured interval until ctx is
// cancelled. It runs off the interactive path.
func (w *Watcher) Start(ctx context.Context) {
	go func() {
		w.RefreshNow(ctx)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("trends refresh loop stopped")
				return
			case <-ticker.C:
				w.RefreshNow(ctx)
			}
		}
	}()
}
