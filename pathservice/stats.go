package pathservice

import (
	"github.com/rlindqvist/pathengine/graph"
	"github.com/rlindqvist/pathengine/pcache"
)

// QueryMetrics is the service-level counters accumulated across FindPath
// calls.
type QueryMetrics struct {
	TotalQueries      int64
	CacheHits         int64
	CacheMisses       int64
	SuccessfulQueries int64
	FailedQueries     int64
	CacheHitRate      float64
	SuccessRate       float64
}

// Stats aggregates service, graph, and cache statistics into a single
// snapshot.
type Stats struct {
	Query QueryMetrics
	Graph graph.Stats
	Cache pcache.Stats
}

// Stats returns a consistent-enough snapshot of every layer's counters. As
// with the rest of the service, no single lock is held across layers: each
// component's counters are read independently, so the snapshot is a
// best-effort composite, not an atomic cross-component transaction.
func (s *Service) Stats() Stats {
	q := QueryMetrics{
		TotalQueries:      s.totalQueries.Load(),
		CacheHits:         s.cacheHits.Load(),
		CacheMisses:       s.cacheMisses.Load(),
		SuccessfulQueries: s.successfulQueries.Load(),
		FailedQueries:     s.failedQueries.Load(),
	}
	if q.TotalQueries > 0 {
		q.CacheHitRate = float64(q.CacheHits) / float64(q.TotalQueries)
		q.SuccessRate = float64(q.SuccessfulQueries) / float64(q.TotalQueries)
	}

	return Stats{
		Query: q,
		Graph: s.graph.Stats(),
		Cache: s.cache.Stats(),
	}
}
