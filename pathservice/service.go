package pathservice

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/rlindqvist/pathengine/graph"
	"github.com/rlindqvist/pathengine/internal/singleflight"
	"github.com/rlindqvist/pathengine/pathfind"
	"github.com/rlindqvist/pathengine/pcache"
)

// Service wires the sharded graph, the path cache, and bidirectional BFS
// into the single pathfinding entry point an embedding program talks to.
type Service struct {
	graph *graph.Graph
	cache pcache.PathCacher
	cfg   Config

	logger       *zap.Logger
	cacheMetrics pcache.Metrics

	sf singleflight.Group[string, pathfind.PathResult]

	totalQueries      atomic.Int64
	cacheHits         atomic.Int64
	cacheMisses       atomic.Int64
	successfulQueries atomic.Int64
	failedQueries     atomic.Int64
}

// New constructs a Service. Unset Config fields take Config's own
// defaults (see withDefaults).
func New(cfg Config, opts ...Option) *Service {
	s := &Service{cfg: cfg.withDefaults(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	s.graph = graph.New(graph.Config{NumShards: s.cfg.NumShards})
	cacheOpt := pcache.Options[string, pcache.PathRecord]{
		Capacity:        s.cfg.CacheMaxSize,
		DefaultTTL:      s.cfg.PathTTL,
		CleanupInterval: s.cfg.CleanupInterval,
		Metrics:         s.cacheMetrics,
	}
	if s.cfg.CacheNodes > 1 {
		s.cache = pcache.NewDistributedPathCache(s.cfg.CacheNodes, cacheOpt)
	} else {
		s.cache = pcache.NewPathCache(cacheOpt)
	}
	return s
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

// singleflightKey orders the pair so concurrent FindPath(a,b) and
// FindPath(b,a) misses coalesce into the same in-flight BFS, matching the
// endpoint-symmetric grammar PathCache itself keys on.
func singleflightKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + ":" + b
}

// FindPathResult mirrors the fields a caller needs from a pathfinding
// query, including cache provenance and service-level timing.
type FindPathResult struct {
	Found                    bool
	Path                     []string
	Distance                 int
	NodesExplored            int
	AlgorithmExecutionTimeMs float64
	FromCache                bool
	ServiceResponseTimeMs    float64
	StartUserID              string
	TargetUserID             string
}

// FindPath looks up (start,target) in the path cache; on a miss it runs
// bidirectional BFS, stores a successful result back into the cache, and
// updates the service's query metrics. Concurrent misses for the same
// unordered pair, in either direction, are coalesced via singleflight so
// only one BFS runs.
func (s *Service) FindPath(ctx context.Context, start, target string, useCache bool) FindPathResult {
	queryStart := time.Now()
	s.totalQueries.Add(1)

	if useCache {
		if rec, ok := s.cache.Get(start, target); ok {
			s.cacheHits.Add(1)
			s.successfulQueries.Add(1)
			return FindPathResult{
				Found:                    true,
				Path:                     rec.Path,
				Distance:                 len(rec.Path) - 1,
				NodesExplored:            rec.NodesExplored,
				AlgorithmExecutionTimeMs: rec.AlgorithmExecutionTimeMs,
				FromCache:                true,
				ServiceResponseTimeMs:    msSince(queryStart),
				StartUserID:              start,
				TargetUserID:             target,
			}
		}
		s.cacheMisses.Add(1)
	}

	res, err := s.sf.Do(ctx, singleflightKey(start, target), func() (pathfind.PathResult, error) {
		return pathfind.Search(ctx, s.graph, start, target, s.cfg.MaxDepth)
	})
	elapsed := msSince(queryStart)
	if err != nil {
		s.failedQueries.Add(1)
		s.logger.Error("pathfinding query failed",
			zap.Error(err), zap.String("start", start), zap.String("target", target))
		return FindPathResult{
			StartUserID:           start,
			TargetUserID:          target,
			Distance:              -1,
			ServiceResponseTimeMs: elapsed,
		}
	}

	if res.Found {
		s.successfulQueries.Add(1)
		if useCache {
			s.cache.Put(start, target, pcache.PathRecord{
				Path:                     res.Path,
				NodesExplored:            res.NodesExplored,
				AlgorithmExecutionTimeMs: res.AlgorithmExecutionTimeMs,
			})
		}
	} else {
		s.failedQueries.Add(1)
	}

	return FindPathResult{
		Found:                    res.Found,
		Path:                     res.Path,
		Distance:                 res.Distance,
		NodesExplored:            res.NodesExplored,
		AlgorithmExecutionTimeMs: res.AlgorithmExecutionTimeMs,
		FromCache:                false,
		ServiceResponseTimeMs:    elapsed,
		StartUserID:              start,
		TargetUserID:             target,
	}
}

// Degrees returns just the degrees of separation between start and
// target, or -1 if unreachable or either endpoint is unknown.
func (s *Service) Degrees(ctx context.Context, start, target string) int {
	r := s.FindPath(ctx, start, target, true)
	if !r.Found {
		return -1
	}
	return r.Distance
}

// AddUser forwards to the underlying graph.
func (s *Service) AddUser(username, email, userID string) string {
	return s.graph.AddUser(username, email, userID)
}

// HasUser forwards to the underlying graph.
func (s *Service) HasUser(id string) bool {
	return s.graph.HasUser(id)
}

// AddConnection adds an edge and, on success, invalidates every cached
// path touching either endpoint.
func (s *Service) AddConnection(a, b string) bool {
	ok := s.graph.AddEdge(a, b)
	if ok {
		s.cache.InvalidateUser(a)
		s.cache.InvalidateUser(b)
	}
	return ok
}

// RemoveConnection removes an edge and, on success, invalidates every
// cached path touching either endpoint.
func (s *Service) RemoveConnection(a, b string) bool {
	ok := s.graph.RemoveEdge(a, b)
	if ok {
		s.cache.InvalidateUser(a)
		s.cache.InvalidateUser(b)
	}
	return ok
}
