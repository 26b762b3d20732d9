package pathservice

import (
	"go.uber.org/zap"

	"github.com/rlindqvist/pathengine/pcache"
)

// Option configures a Service at construction time.
type Option func(*Service)

// WithLogger injects a structured logger. The default is zap.NewNop(), so
// a Service is silent unless a logger is supplied.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCacheMetrics wires a pcache.Metrics implementation (e.g. the
// Prometheus adapter in metrics/prom) into the path cache.
func WithCacheMetrics(m pcache.Metrics) Option {
	return func(s *Service) {
		s.cacheMetrics = m
	}
}
