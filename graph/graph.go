package graph

import (
	"time"

	"github.com/google/uuid"

	"github.com/rlindqvist/pathengine/internal/util"
)

// Config configures a Graph. NumShards <= 0 picks a practical default based
// on CPU parallelism (internal/util.ReasonableShardCount).
type Config struct {
	NumShards int
}

// Graph is a sharded, in-memory undirected social graph. Every operation
// routes to the shard(s) owning the involved user ids via ShardOf; no
// operation ever holds two shard locks at once.
type Graph struct {
	shards    []*shard
	numShards int
}

// New constructs a Graph with cfg.NumShards shards. cfg.NumShards <= 0
// picks a CPU-sized default (util.ReasonableShardCount) — a convenience
// for callers using graph.Graph standalone; pathservice.Config always
// supplies its own default of 4 explicitly, so this fallback never
// triggers when the graph is built through the service layer.
func New(cfg Config) *Graph {
	n := cfg.NumShards
	if n <= 0 {
		n = util.ReasonableShardCount()
	}
	g := &Graph{shards: make([]*shard, n), numShards: n}
	for i := range g.shards {
		g.shards[i] = newShard(i, n)
	}
	return g
}

func (g *Graph) shardOf(id string) int {
	return ShardOf(id, g.numShards)
}

// AddUser inserts a new user. If userID is empty, a fresh uuid is minted.
// Idempotent: re-adding an id that already exists is a no-op and returns
// the existing id.
func (g *Graph) AddUser(username, email, userID string) string {
	if userID == "" {
		userID = uuid.NewString()
	}
	u := &User{
		UserID:    userID,
		Username:  username,
		Email:     email,
		CreatedAt: time.Now(),
		IsActive:  true,
	}
	g.shards[g.shardOf(userID)].insertUser(u)
	return userID
}

// HasUser reports whether id is known to the graph.
func (g *Graph) HasUser(id string) bool {
	return g.shards[g.shardOf(id)].hasUser(id)
}

// GetUser returns the user record for id, if known.
func (g *Graph) GetUser(id string) (*User, bool) {
	return g.shards[g.shardOf(id)].getUser(id)
}

// AddEdge adds an undirected connection between a and b. Returns false for
// a self-loop, an unknown endpoint, or an edge that already existed on both
// sides; otherwise true if at least one side was newly inserted.
//
// The two endpoint shards are always touched in ascending shard-id order.
// Today each insertEdgeEndpoint call acquires and releases its shard's lock
// independently, so this ordering has no effect on correctness yet — but a
// future implementation that batches both sides under held locks inherits
// a deadlock-free ordering for free.
func (g *Graph) AddEdge(a, b string) bool {
	if a == b {
		return false
	}
	shardA, shardB := g.shardOf(a), g.shardOf(b)
	if !g.shards[shardA].hasUser(a) || !g.shards[shardB].hasUser(b) {
		return false
	}

	first, second := shardA, shardB
	firstUser, firstPeer, secondUser, secondPeer := a, b, b, a
	if second < first {
		first, second = second, first
		firstUser, firstPeer, secondUser, secondPeer = secondUser, secondPeer, firstUser, firstPeer
	}

	insertedFirst := g.shards[first].insertEdgeEndpoint(firstUser, firstPeer, g.shardOf(firstPeer))
	insertedSecond := g.shards[second].insertEdgeEndpoint(secondUser, secondPeer, g.shardOf(secondPeer))
	return insertedFirst || insertedSecond
}

// RemoveEdge removes the undirected connection between a and b. Returns
// true only if both endpoints previously contained each other.
func (g *Graph) RemoveEdge(a, b string) bool {
	if a == b {
		return false
	}
	shardA, shardB := g.shardOf(a), g.shardOf(b)

	first, second := shardA, shardB
	firstUser, firstPeer, secondUser, secondPeer := a, b, b, a
	if second < first {
		first, second = second, first
		firstUser, firstPeer, secondUser, secondPeer = secondUser, secondPeer, firstUser, firstPeer
	}

	removedFirst := g.shards[first].removeEdgeEndpoint(firstUser, firstPeer, g.shardOf(firstPeer))
	removedSecond := g.shards[second].removeEdgeEndpoint(secondUser, secondPeer, g.shardOf(secondPeer))
	return removedFirst && removedSecond
}

// Neighbors returns a copy of u's adjacency set. Unknown users yield an
// empty slice, never an error: Neighbors never fails.
func (g *Graph) Neighbors(u string) []string {
	out := g.shards[g.shardOf(u)].neighbors(u)
	if out == nil {
		return []string{}
	}
	return out
}

// Stats aggregates per-shard counters into a whole-graph snapshot,
// including the fraction of adjacency endpoints that cross shard
// boundaries.
func (g *Graph) Stats() Stats {
	st := Stats{NumShards: g.numShards, Shards: make([]ShardStats, len(g.shards))}
	for i, s := range g.shards {
		ss := s.stats()
		st.Shards[i] = ss
		st.TotalUsers += ss.Users
		st.LocalEdges += ss.LocalEdges
		st.CrossEdges += ss.CrossEdges
	}
	total := st.LocalEdges + st.CrossEdges
	if total > 0 {
		st.CrossShardRatio = float64(st.CrossEdges) / float64(total)
	}
	return st
}
