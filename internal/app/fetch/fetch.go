// Package fetch coordinates per-page collection fetches. Each page caches
// its latest fetched collection under a per-user key so that search and
// filter interactions re-run only the view-model pipeline, without another
// round-trip to the data service. Snapshots are tagged with a generation
// counter: when fetches overlap, only the most recently started one may
// publish its result, so a slow stale response can never clobber newer data.
package fetch

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/campushub/portal/internal/observability/metrics"
)

// Snapshots holds the cached collections of all pages, keyed by
// "<userID>:<page>".
type Snapshots struct {
	cache *gocache.Cache

	mu   sync.Mutex
	gens map[string]uint64
}

func NewSnapshots(ttl time.Duration) *Snapshots {
	return &Snapshots{
		cache: gocache.New(ttl, 2*ttl),
		gens:  make(map[string]uint64),
	}
}

// Begin registers the start of a fetch for key and returns its generation.
func (s *Snapshots) Begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[key]++
	return s.gens[key]
}

// Commit publishes a fetched value if gen is still the current generation
// for key. It reports whether the value was applied; a false return means a
// newer fetch superseded this one and the value must be discarded.
func (s *Snapshots) Commit(key string, gen uint64, value interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[key] != gen {
		return false
	}
	s.cache.Set(key, value, gocache.DefaultExpiration)
	return true
}

// Get returns the cached collection for key, if present and unexpired.
func (s *Snapshots) Get(key string) (interface{}, bool) {
	return s.cache.Get(key)
}

// Invalidate drops the snapshot for key. Mutation handlers call this so the
// next list render re-fetches; the list is only as fresh as that fetch.
func (s *Snapshots) Invalidate(key string) {
	s.cache.Delete(key)
}

// Load returns the snapshot for key, fetching it through list when the
// snapshot is absent, expired, of the wrong shape, or refresh is set. The
// fetched collection is published only if no newer fetch began in the
// meantime; either way the caller gets the collection its own fetch
// returned.
func Load[R any](ctx context.Context, s *Snapshots, key string, refresh bool, list func(context.Context) ([]R, error)) ([]R, error) {
	m := metrics.Get()
	if !refresh {
		if v, ok := s.Get(key); ok {
			if raw, ok := v.([]R); ok {
				m.SnapshotHitsTotal.Add(ctx, 1)
				return raw, nil
			}
		}
	}

	gen := s.Begin(key)
	m.ListFetchesTotal.Add(ctx, 1)
	raw, err := list(ctx)
	if err != nil {
		m.ListFetchErrorsTotal.Add(ctx, 1)
		return nil, err
	}
	s.Commit(key, gen, raw)
	return raw, nil
}
