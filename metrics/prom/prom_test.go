package prom

import (
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rlindqvist/pathengine/pcache"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("collecting counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("collecting gauge: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestAdapter_RecordsHitsMissesEvictionsAndSize(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	a := New(reg, "pathengine", "pathcache_test", nil)

	a.Hit()
	a.Hit()
	a.Miss()
	a.Evict(pcache.EvictTTL)
	a.Size(3)

	if got := counterValue(t, a.hits); got != 2 {
		t.Fatalf("want 2 hits, got %v", got)
	}
	if got := counterValue(t, a.misses); got != 1 {
		t.Fatalf("want 1 miss, got %v", got)
	}
	if got := gaugeValue(t, a.sizeEnt); got != 3 {
		t.Fatalf("want size gauge 3, got %v", got)
	}
}

func TestAdapter_WiredIntoCache(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	a := New(reg, "pathengine", "cache_wired_test", nil)

	c := pcache.New[string, int](pcache.Options[string, int]{Capacity: 1, Metrics: a})
	c.Put("a", 1)
	c.Get("a")
	c.Get("missing")
	c.Put("b", 2) // capacity 1: evicts "a"

	if got := counterValue(t, a.hits); got != 1 {
		t.Fatalf("want 1 hit recorded via the wired cache, got %v", got)
	}
	if got := counterValue(t, a.misses); got != 1 {
		t.Fatalf("want 1 miss recorded via the wired cache, got %v", got)
	}
}
