package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type registryEntry struct {
	view     *View
	lastSeen time.Time
}

// Registry keeps one View per visitor and drops views left idle for longer
// than the configured TTL.
type Registry struct {
	mu      sync.Mutex
	views   map[string]*registryEntry
	fetcher QueryFetcher
	initial Mode
	idleTTL time.Duration
	now     func() time.Time
}

// NewRegistry creates a registry whose new views start on the initial category
func NewRegistry(fetcher QueryFetcher, initial Mode, idleTTL time.Duration) *Registry {
	return &Registry{
		views:   make(map[string]*registryEntry),
		fetcher: fetcher,
		initial: initial,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// Get returns the visitor's view, creating it on first use
func (r *Registry) Get(visitorID string) *View {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.views[visitorID]
	if !ok {
		e = &registryEntry{view: NewView(r.fetcher, r.initial)}
		r.views[visitorID] = e
	}
	e.lastSeen = r.now()
	return e.view
}

// Len returns the number of live views
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Sweep removes views idle for longer than the TTL and returns how many went
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTTL)
	removed := 0
	for id, e := range r.views {
		if e.lastSeen.Before(cutoff) {
			delete(r.views, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Debug().Int("removed", n).Int("live", r.Len()).Msg("🧹 Swept idle views")
			}
		}
	}
}
