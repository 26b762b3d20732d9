package pcache

import (
	"context"
	"time"

	"github.com/rlindqvist/pathengine/policy"
)

// EvictReason explains why an entry was removed.
type EvictReason int

const (
	// EvictPolicy — removed by the active eviction policy (e.g., LRU/2Q).
	EvictPolicy EvictReason = iota
	// EvictTTL — expired by TTL (lazy eviction on access or periodic sweep).
	EvictTTL
	// EvictCapacity — removed to satisfy the capacity limit.
	EvictCapacity
)

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries int)
}

// Clock provides time in UnixNano; useful for deterministic tests.
type Clock interface{ NowUnixNano() int64 }

// Options configures a Cache[K,V]. Capacity must be > 0 (New panics
// otherwise); the other zero values are safe, and defaults are applied in
// New():
//   - nil Policy          => LRU
//   - nil Metrics         => NoopMetrics
//   - CleanupInterval <=0 => 5 minutes
type Options[K comparable, V any] struct {
	// Capacity is the entry count limit.
	Capacity int

	// Policy is a pluggable eviction policy (LRU/2Q/…); nil => LRU by default.
	Policy policy.Policy[K, V]

	// DefaultTTL applies to Put when a per-key TTL is not provided (0 = no TTL).
	DefaultTTL time.Duration

	// CleanupInterval bounds how often a Get triggers a full sweep of
	// expired entries: at most once per CleanupInterval wall-time units.
	CleanupInterval time.Duration

	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// OnEvict is called on eviction under the cache lock; keep callbacks lightweight.
	OnEvict func(k K, v V, reason EvictReason)
	Metrics Metrics

	// Clock allows overriding the time source (tests). Nil => time.Now().
	Clock Clock
}
