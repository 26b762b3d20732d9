package pathservice

import "time"

// Config holds every tunable knob for a Service and its underlying graph
// and cache. There are no environment variables, files, or CLI flags in
// the core: a Config is always built by the embedding program and handed
// to New directly.
type Config struct {
	// NumShards is the number of adjacency partitions in the underlying
	// graph. Default 4.
	NumShards int
	// CacheMaxSize is the LRU capacity of the path cache. Default 50000.
	CacheMaxSize int
	// PathTTL is the default TTL of cached path entries. Default 30m.
	PathTTL time.Duration
	// CleanupInterval bounds how often the path cache's lazy sweep may
	// run. Default 5m.
	CleanupInterval time.Duration
	// MaxDepth is the hard cap on returned path length. Default 6.
	MaxDepth int
	// CacheNodes is the number of independent path-cache nodes to fan
	// lookups across via a distributed, FNV-hash-routed cache. <= 1 (the
	// default) uses a single pcache.PathCache with no fan-out.
	CacheNodes int
}

func (c Config) withDefaults() Config {
	if c.NumShards <= 0 {
		c.NumShards = 4
	}
	if c.CacheMaxSize <= 0 {
		c.CacheMaxSize = 50000
	}
	if c.PathTTL <= 0 {
		c.PathTTL = 30 * time.Minute
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = 5 * time.Minute
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = 6
	}
	if c.CacheNodes <= 0 {
		c.CacheNodes = 1
	}
	return c
}
