package reporting

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/salescope-lab/salescope/internal/core/engine"
	"github.com/salescope-lab/salescope/internal/metrics"
	"github.com/salescope-lab/salescope/internal/store"
	"golang.org/x/sync/singleflight"
)

// Service is the query layer over the analytics engine. The engine itself
// is a set of pure functions over an immutable snapshot; all mutable state
// (the current snapshot pointer and the result cache) lives here.
type Service struct {
	holder *store.SnapshotHolder
	source store.Source
	meter  *metrics.Registry
	cache  *resultCache
	group  singleflight.Group
}

// NewService wires the query layer. cacheTTL <= 0 disables result caching.
func NewService(holder *store.SnapshotHolder, source store.Source, meter *metrics.Registry, cacheTTL time.Duration) *Service {
	s := &Service{
		holder: holder,
		source: source,
		meter:  meter,
	}
	if cacheTTL > 0 {
		s.cache = newResultCache(cacheTTL)
	}
	return s
}

// cached serves one operation: cache lookup, then a singleflight-deduped
// compute over the snapshot current at call time. The cache key carries the
// snapshot version, so results never outlive the data they were computed
// from.
func (s *Service) cached(operation, params string, compute func(*engine.Snapshot) interface{}) interface{} {
	started := time.Now()
	defer func() {
		s.meter.QueryLatency.Observe(time.Since(started).Seconds())
		s.meter.Queries.WithLabelValues(operation).Inc()
	}()

	snap := s.holder.Current()
	if s.cache == nil {
		return compute(snap)
	}

	key := fmt.Sprintf("%s|%s|%s", operation, params, snap.Version())
	if v, ok := s.cache.Get(key); ok {
		s.meter.CacheHits.Inc()
		return v
	}
	s.meter.CacheMisses.Inc()

	v, _, _ := s.group.Do(key, func() (interface{}, error) {
		result := compute(snap)
		s.cache.Put(key, result)
		return result, nil
	})
	return v
}

// Reload loads a fresh snapshot from the configured source and atomically
// swaps it in. Queries already running keep the snapshot they started with.
func (s *Service) Reload(ctx context.Context) (*engine.Snapshot, error) {
	snap, err := s.source.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("reload snapshot: %w", err)
	}
	s.holder.Swap(snap)
	s.meter.Reloads.Inc()
	s.meter.SnapshotSize.Set(float64(snap.Len()))

	slog.Info("Snapshot reloaded",
		"version", snap.Version(),
		"records", snap.Len(),
		"has_customer_name", snap.HasCustomerName(),
	)
	return snap, nil
}
