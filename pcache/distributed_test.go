package pcache

import "testing"

// NewDistributedPathCache is the only constructor pathservice uses for
// multi-node mode; confirm it satisfies PathCacher and behaves like a
// PathCache from the caller's perspective.
func TestNewDistributedPathCache_SatisfiesPathCacher(t *testing.T) {
	t.Parallel()

	var pc PathCacher = NewDistributedPathCache(3, Options[string, PathRecord]{Capacity: 16})
	pc.Put("x", "y", PathRecord{Path: []string{"x", "y"}})
	if _, ok := pc.Get("x", "y"); !ok {
		t.Fatal("want hit for (x,y)")
	}
	if _, ok := pc.Get("y", "x"); !ok {
		t.Fatal("want endpoint-symmetric hit for (y,x)")
	}
	if pc.Len() != 1 {
		t.Fatalf("want 1 entry, got %d", pc.Len())
	}
	if removed := pc.InvalidateUser("x"); removed != 1 {
		t.Fatalf("want 1 entry invalidated, got %d", removed)
	}
}

func TestDistributedCache_RoutesAndInvalidatesAcrossNodes(t *testing.T) {
	t.Parallel()

	d := newDistributedCache(4, Options[string, PathRecord]{Capacity: 64})

	pairs := [][2]string{
		{"u1", "u2"}, {"u3", "u4"}, {"u5", "u6"}, {"u7", "u8"},
		{"alice", "bob"}, {"carol", "dave"},
	}
	for _, p := range pairs {
		d.Put(p[0], p[1], PathRecord{Path: []string{p[0], p[1]}})
	}

	for _, p := range pairs {
		if _, ok := d.Get(p[0], p[1]); !ok {
			t.Fatalf("expected hit for %v", p)
		}
	}
	if got := d.Len(); got != len(pairs) {
		t.Fatalf("want %d total entries, got %d", len(pairs), got)
	}

	removed := d.InvalidateUser("u3")
	if removed != 1 {
		t.Fatalf("want 1 entry invalidated for u3, got %d", removed)
	}
	if _, ok := d.Get("u3", "u4"); ok {
		t.Fatal("(u3,u4) should be invalidated regardless of which node it lives on")
	}
	if _, ok := d.Get("u1", "u2"); !ok {
		t.Fatal("(u1,u2) should be unaffected")
	}
}

func TestDistributedCache_StatsAggregates(t *testing.T) {
	t.Parallel()

	d := newDistributedCache(3, Options[string, PathRecord]{Capacity: 10})
	d.Put("a", "b", PathRecord{Path: []string{"a", "b"}})
	d.Get("a", "b")
	d.Get("missing1", "missing2")

	stats := d.Stats()
	if stats.Size != 1 {
		t.Fatalf("want size 1, got %d", stats.Size)
	}
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("want 1 hit and 1 miss, got hits=%d misses=%d", stats.Hits, stats.Misses)
	}
}
