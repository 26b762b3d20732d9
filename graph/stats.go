package graph

// ShardStats is a single shard's contribution to Graph.Stats.
type ShardStats struct {
	ShardID     int
	Users       int
	LocalEdges  int64
	CrossEdges  int64
}

// Stats aggregates shard-level counters into a whole-graph view.
type Stats struct {
	NumShards       int
	TotalUsers      int
	LocalEdges      int64
	CrossEdges      int64
	CrossShardRatio float64
	Shards          []ShardStats
}
