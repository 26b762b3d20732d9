// Package graph implements the sharded, in-memory adjacency store for the
// social-graph pathfinding engine: a Shard owning a disjoint subset of
// users and their adjacency lists (C1), and a Graph that routes
// operations to shards and exposes a single logical undirected graph
// (C2).
//
// Design
//
//   - Ownership: shard_of(user_id) = MD5(user_id) interpreted as a
//     big-endian unsigned integer, mod the shard count. This must be
//     stable across processes (tests rely on it), so it is implemented
//     against crypto/md5 and math/big rather than a faster non-stable
//     hash — see DESIGN.md for why no third-party hash library applies
//     here.
//
//   - Concurrency: each Shard is guarded by its own RWMutex. Neighbors
//     always returns a copy, so callers (in particular, a bidirectional
//     BFS holding no graph-wide lock) iterate without holding any shard
//     lock: a reader never blocks a writer on a different vertex, and a
//     multi-hop traversal never holds one shard's lock while waiting on
//     another's.
//
//   - Hot counters: each shard tracks its own user/edge counts with
//     cache-line-padded fields, the same layout used for hit/miss
//     counters elsewhere in this module, so Graph.Stats() never has to
//     acquire a shard lock to read them.
package graph
