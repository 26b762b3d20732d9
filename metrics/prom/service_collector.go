package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rlindqvist/pathengine/pathservice"
)

// statsSource is the slice of pathservice.Service that ServiceCollector
// depends on; satisfied by *pathservice.Service.
type statsSource interface {
	Stats() pathservice.Stats
}

// ServiceCollector is a prometheus.Collector that pulls a fresh
// pathservice.Stats snapshot on every scrape rather than mirroring
// counters eagerly — the service's own atomics remain the source of
// truth, this just samples them.
type ServiceCollector struct {
	svc statsSource

	totalQueries      *prometheus.Desc
	cacheHits         *prometheus.Desc
	cacheMisses       *prometheus.Desc
	successfulQueries *prometheus.Desc
	failedQueries     *prometheus.Desc
	cacheHitRate      *prometheus.Desc
	successRate       *prometheus.Desc

	graphUsers           *prometheus.Desc
	graphCrossShardRatio *prometheus.Desc
	cacheSize            *prometheus.Desc
}

// NewServiceCollector wraps svc for registration with a Prometheus registry.
func NewServiceCollector(svc statsSource, ns, sub string) *ServiceCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(ns, sub, name), help, nil, nil)
	}
	return &ServiceCollector{
		svc:                  svc,
		totalQueries:         desc("queries_total", "Total pathfinding queries"),
		cacheHits:            desc("query_cache_hits_total", "Queries served from the path cache"),
		cacheMisses:          desc("query_cache_misses_total", "Queries that missed the path cache"),
		successfulQueries:    desc("queries_successful_total", "Queries that found a path"),
		failedQueries:        desc("queries_failed_total", "Queries that did not find a path or errored"),
		cacheHitRate:         desc("query_cache_hit_rate", "Fraction of queries served from cache"),
		successRate:          desc("query_success_rate", "Fraction of queries that found a path"),
		graphUsers:           desc("graph_users", "Total users known to the graph"),
		graphCrossShardRatio: desc("graph_cross_shard_edge_ratio", "Fraction of adjacency endpoints crossing shard boundaries"),
		cacheSize:            desc("cache_size_entries", "Number of resident path cache entries"),
	}
}

// Describe implements prometheus.Collector.
func (c *ServiceCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalQueries
	ch <- c.cacheHits
	ch <- c.cacheMisses
	ch <- c.successfulQueries
	ch <- c.failedQueries
	ch <- c.cacheHitRate
	ch <- c.successRate
	ch <- c.graphUsers
	ch <- c.graphCrossShardRatio
	ch <- c.cacheSize
}

// Collect implements prometheus.Collector.
func (c *ServiceCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.svc.Stats()

	ch <- prometheus.MustNewConstMetric(c.totalQueries, prometheus.CounterValue, float64(stats.Query.TotalQueries))
	ch <- prometheus.MustNewConstMetric(c.cacheHits, prometheus.CounterValue, float64(stats.Query.CacheHits))
	ch <- prometheus.MustNewConstMetric(c.cacheMisses, prometheus.CounterValue, float64(stats.Query.CacheMisses))
	ch <- prometheus.MustNewConstMetric(c.successfulQueries, prometheus.CounterValue, float64(stats.Query.SuccessfulQueries))
	ch <- prometheus.MustNewConstMetric(c.failedQueries, prometheus.CounterValue, float64(stats.Query.FailedQueries))
	ch <- prometheus.MustNewConstMetric(c.cacheHitRate, prometheus.GaugeValue, stats.Query.CacheHitRate)
	ch <- prometheus.MustNewConstMetric(c.successRate, prometheus.GaugeValue, stats.Query.SuccessRate)
	ch <- prometheus.MustNewConstMetric(c.graphUsers, prometheus.GaugeValue, float64(stats.Graph.TotalUsers))
	ch <- prometheus.MustNewConstMetric(c.graphCrossShardRatio, prometheus.GaugeValue, stats.Graph.CrossShardRatio)
	ch <- prometheus.MustNewConstMetric(c.cacheSize, prometheus.GaugeValue, float64(stats.Cache.Size))
}

var _ prometheus.Collector = (*ServiceCollector)(nil)
