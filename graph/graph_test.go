package graph

import "testing"

func TestGraph_AddUser_IdempotentAndMintsID(t *testing.T) {
	t.Parallel()

	g := New(Config{NumShards: 4})
	id := g.AddUser("alice", "alice@example.com", "")
	if id == "" {
		t.Fatal("expected a minted user id")
	}
	if !g.HasUser(id) {
		t.Fatal("expected HasUser to be true after AddUser")
	}

	// Re-adding the same explicit id is idempotent: the original record
	// survives unchanged.
	explicit := g.AddUser("bob", "bob@example.com", "fixed-id")
	if explicit != "fixed-id" {
		t.Fatalf("want fixed-id back, got %s", explicit)
	}
	g.AddUser("bob-impostor", "impostor@example.com", "fixed-id")
	u, ok := g.GetUser("fixed-id")
	if !ok || u.Username != "bob" {
		t.Fatalf("AddUser must not overwrite an existing user, got %+v", u)
	}
}

func TestGraph_AddEdge_SymmetricAndIdempotent(t *testing.T) {
	t.Parallel()

	g := New(Config{NumShards: 4})
	a := g.AddUser("a", "a@x.com", "a")
	b := g.AddUser("b", "b@x.com", "b")

	if !g.AddEdge(a, b) {
		t.Fatal("expected first AddEdge to report a new insertion")
	}
	if g.AddEdge(a, b) {
		t.Fatal("expected duplicate AddEdge to report no new insertion")
	}

	aNeighbors := g.Neighbors(a)
	bNeighbors := g.Neighbors(b)
	if len(aNeighbors) != 1 || aNeighbors[0] != b {
		t.Fatalf("a's neighbors = %v, want [%s]", aNeighbors, b)
	}
	if len(bNeighbors) != 1 || bNeighbors[0] != a {
		t.Fatalf("b's neighbors = %v, want [%s]", bNeighbors, a)
	}
}

func TestGraph_AddEdge_RejectsSelfLoopAndUnknownEndpoint(t *testing.T) {
	t.Parallel()

	g := New(Config{NumShards: 4})
	a := g.AddUser("a", "a@x.com", "a")

	if g.AddEdge(a, a) {
		t.Fatal("self-loop must be rejected")
	}
	if g.AddEdge(a, "ghost") {
		t.Fatal("edge to an unknown user must be rejected")
	}
}

func TestGraph_RemoveEdge_SymmetricAndOnlyTrueIfBothSidesExisted(t *testing.T) {
	t.Parallel()

	g := New(Config{NumShards: 4})
	a := g.AddUser("a", "a@x.com", "a")
	b := g.AddUser("b", "b@x.com", "b")

	if g.RemoveEdge(a, b) {
		t.Fatal("removing a nonexistent edge must return false")
	}

	g.AddEdge(a, b)
	if !g.RemoveEdge(a, b) {
		t.Fatal("removing an existing edge must return true")
	}
	if len(g.Neighbors(a)) != 0 || len(g.Neighbors(b)) != 0 {
		t.Fatal("both sides must be cleared after RemoveEdge")
	}
	if g.RemoveEdge(a, b) {
		t.Fatal("removing an already-removed edge must return false")
	}
}

func TestGraph_Neighbors_UnknownUserIsEmptyNotError(t *testing.T) {
	t.Parallel()

	g := New(Config{NumShards: 4})
	n := g.Neighbors("nobody")
	if n == nil || len(n) != 0 {
		t.Fatalf("want empty (not nil) slice for unknown user, got %v", n)
	}
}

// Scenario / I: every edge endpoint is counted as either local or cross
// shard, and the cross-shard ratio stays within [0, 1].
func TestGraph_Stats_ClassifiesLocalVsCrossShardEdges(t *testing.T) {
	t.Parallel()

	g := New(Config{NumShards: 4})
	// Build a full clique over a fixed set of ids, so every pair of users
	// is connected whichever shards they land on.
	ids := []string{"n0", "n1", "n2", "n3", "n4", "n5", "n6", "n7"}
	for _, id := range ids {
		g.AddUser(id, id+"@x.com", id)
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			g.AddEdge(ids[i], ids[j])
		}
	}

	stats := g.Stats()
	if stats.TotalUsers != len(ids) {
		t.Fatalf("want %d users, got %d", len(ids), stats.TotalUsers)
	}
	total := stats.LocalEdges + stats.CrossEdges
	wantTotal := int64(len(ids) * (len(ids) - 1)) // each undirected edge counted from both endpoints
	if total != wantTotal {
		t.Fatalf("want %d total adjacency endpoints, got %d", wantTotal, total)
	}
	if stats.CrossShardRatio < 0 || stats.CrossShardRatio > 1 {
		t.Fatalf("cross-shard ratio out of range: %f", stats.CrossShardRatio)
	}
}

func TestGraph_Stats_EmptyGraphHasZeroRatio(t *testing.T) {
	t.Parallel()

	g := New(Config{NumShards: 4})
	stats := g.Stats()
	if stats.CrossShardRatio != 0 {
		t.Fatalf("want 0 ratio on an empty graph, got %f", stats.CrossShardRatio)
	}
}

func TestGraph_New_DefaultsShardCountWhenNonPositive(t *testing.T) {
	t.Parallel()

	g := New(Config{NumShards: 0})
	if len(g.shards) == 0 {
		t.Fatal("want a positive default shard count")
	}
}
