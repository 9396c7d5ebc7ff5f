package geocode

import (
	"context"
	"sync"
	"time"

	"github.com/towntreasure/backend/internal/domain/ordering"
)

// DebouncedSearcher wraps a LocationSearcher so that rapid successive
// queries collapse into one upstream request. Each call waits out the
// configured delay before searching; a newer call during the wait, or
// while a search is in flight, cancels the older one, which then
// returns context.Canceled.
type DebouncedSearcher struct {
	inner ordering.LocationSearcher
	delay time.Duration

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewDebouncedSearcher creates a debounced wrapper around a searcher
func NewDebouncedSearcher(inner ordering.LocationSearcher, delay time.Duration) *DebouncedSearcher {
	return &DebouncedSearcher{inner: inner, delay: delay}
}

// Search waits for the debounce delay and then forwards the query.
// Only the most recent caller survives; earlier pending or in-flight
// searches are cancelled.
func (d *DebouncedSearcher) Search(ctx context.Context, query string) ([]ordering.DeliveryLocation, error) {
	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.gen++
	myGen := d.gen
	d.cancel = cancel
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		// A newer search may have taken over the registration already
		if d.gen == myGen {
			d.cancel = nil
		}
		d.mu.Unlock()
	}()

	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-searchCtx.Done():
		return nil, searchCtx.Err()
	case <-timer.C:
	}

	return d.inner.Search(searchCtx, query)
}
