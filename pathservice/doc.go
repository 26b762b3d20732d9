// Package pathservice orchestrates the sharded graph (graph.Graph), the
// path cache (pcache.PathCache), and bidirectional BFS (pathfind.Search)
// into a single pathfinding service (C6): cache-first lookups, cache
// population on miss, invalidation on mutation, and service-level metrics.
//
// No component in this package signals failure by panicking or returning
// an error for a domain outcome — an unknown user or an unreachable
// target is a normal Found=false result, not an error. A cancelled
// context is logged and likewise reported as a Found=false result; no
// method in this package returns an error.
package pathservice
