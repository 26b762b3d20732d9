// Package pcache provides a generic, single-lock, in-memory cache with
// pluggable eviction policies (LRU by default), per-entry TTL, lazy
// periodic expiry sweeps, optional singleflight loading, and lightweight
// metrics hooks (Cache[K,V]); and a specialization of it for pathfinding
// results keyed symmetrically over two endpoints, with per-user
// invalidation (PathCache).
//
// Design
//
//   - Concurrency: unlike a sharded cache, Cache[K,V] is guarded by a
//     single RWMutex-free mutex — every operation is O(1) except the
//     periodic sweep, which is O(size) but amortised over the configured
//     cleanup interval. This matches a cache whose entries (pathfinding
//     results) are expensive enough to compute, and infrequent enough to
//     touch, that a single lock never becomes the bottleneck; the
//     sharded-lock design lives one layer down, in package graph, where
//     contention is actually a concern.
//
//   - Storage: a map[K]*node for lookups and an intrusive MRU<->LRU
//     doubly linked list for ordering, same shape as a single shard of a
//     sharded cache.
//
//   - TTL: entries carry an absolute UnixNano deadline (0 = no
//     expiration). Expiration is checked lazily on Get, and a periodic
//     sweep (at most once per configured interval) walks the whole map to
//     reclaim entries nobody has touched since they expired.
//
//   - PathCache: keys are "path:" + min(a,b) + ":" + max(a,b), so Get(a,b)
//     and Get(b,a) hit the same entry; the stored record remembers which
//     endpoint was the original start so a query from the other direction
//     gets its path reversed without mutating the cached copy.
//     Invalidation is indexed by endpoint so InvalidateUser(u) does not
//     require a full key scan.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals. By
//     default NoopMetrics is used; plug the metrics/prom adapter to
//     export Prometheus metrics.
package pcache
