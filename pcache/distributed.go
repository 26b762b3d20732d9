package pcache

import (
	"github.com/rlindqvist/pathengine/internal/util"
)

// distributedCache fans a PathCache out across N independent nodes,
// routing by the language's native string hash (FNV-1a here, via
// internal/util.Fnv64a) rather than graph.ShardOf's MD5-mod-S rule: the
// two hashes are deliberately unrelated. graph.ShardOf governs adjacency
// ownership; this one only spreads path-cache load across nodes and has
// no bearing on which graph shard owns either endpoint.
//
// The type itself is not exported: pathservice builds one via
// NewDistributedPathCache, which returns the PathCacher interface, when
// Config.CacheNodes calls for more than one node.
type distributedCache struct {
	nodes []*PathCache
}

// newDistributedCache constructs n independent PathCache nodes, each
// configured identically from opt.
func newDistributedCache(n int, opt Options[string, PathRecord]) *distributedCache {
	if n < 1 {
		n = 1
	}
	d := &distributedCache{nodes: make([]*PathCache, n)}
	for i := range d.nodes {
		d.nodes[i] = NewPathCache(opt)
	}
	return d
}

// NewDistributedPathCache builds a PathCacher fanned out across n
// independent PathCache nodes, each configured identically from opt.
// n <= 1 still returns a working distributedCache of one node; callers
// that never need multiple nodes should use NewPathCache directly.
func NewDistributedPathCache(n int, opt Options[string, PathRecord]) PathCacher {
	return newDistributedCache(n, opt)
}

var (
	_ PathCacher = (*PathCache)(nil)
	_ PathCacher = (*distributedCache)(nil)
)

func (d *distributedCache) nodeFor(key string) *PathCache {
	idx := util.ShardIndex(util.Fnv64a(key), len(d.nodes))
	return d.nodes[idx]
}

// Get routes to the node owning (a,b) and fetches the cached record.
func (d *distributedCache) Get(a, b string) (PathRecord, bool) {
	return d.nodeFor(pathKey(a, b)).Get(a, b)
}

// Put routes to the node owning (a,b) and stores the record.
func (d *distributedCache) Put(a, b string, rec PathRecord) {
	d.nodeFor(pathKey(a, b)).Put(a, b, rec)
}

// InvalidateUser must broadcast to every node: a user's cached paths may
// be routed to any node depending on which partner endpoint the key was
// hashed on, so no single node can be skipped.
func (d *distributedCache) InvalidateUser(u string) int {
	total := 0
	for _, node := range d.nodes {
		total += node.InvalidateUser(u)
	}
	return total
}

// Len sums the resident entry count across all nodes.
func (d *distributedCache) Len() int {
	total := 0
	for _, node := range d.nodes {
		total += node.Len()
	}
	return total
}

// Stats aggregates counters across all nodes into a single snapshot.
func (d *distributedCache) Stats() Stats {
	var agg Stats
	for _, node := range d.nodes {
		s := node.Stats()
		agg.Size += s.Size
		agg.MaxSize += s.MaxSize
		agg.Hits += s.Hits
		agg.Misses += s.Misses
		agg.Evictions += s.Evictions
	}
	total := agg.Hits + agg.Misses
	if total > 0 {
		agg.HitRate = float64(agg.Hits) / float64(total)
	}
	return agg
}
