package pathservice

import (
	"context"
	"fmt"

	"github.com/rlindqvist/pathengine/pathfind"
)

// healthProbeUser is an id that is never a real user: AddUser always
// mints UUIDs or takes caller-supplied ids, neither of which collides
// with this sentinel, so the probe query below always takes the
// start == target fast path in pathfind.Search regardless of graph
// contents.
const healthProbeUser = "__pathservice_health_probe__"

// Health reports whether each layer of the service is responsive. It
// never panics: an invariant violation surfacing as a panic inside a
// dependency is recovered and reported as an unhealthy component rather
// than crashing the health check itself.
type Health struct {
	Healthy    bool
	GraphOK    bool
	CacheOK    bool
	PathfindOK bool
	// Error describes the first recovered panic, or is empty.
	Error string
}

// Health runs a lightweight self-check of each component. Graph and cache
// checks simply confirm their stats calls succeed; the pathfinding check
// runs an actual pathfind.Search call against the live graph so a panic
// anywhere in that call path is caught, rather than asserting PathfindOK
// unconditionally. The probe uses a sentinel start/target pair, so it
// always takes Search's start == target fast path: it exercises the call
// boundary, not the bidirectional BFS loop itself.
func (s *Service) Health() (h Health) {
	defer func() {
		if r := recover(); r != nil {
			h = Health{Error: fmt.Sprint(r)}
		}
	}()
	note := func(r any) {
		if r != nil && h.Error == "" {
			h.Error = fmt.Sprint(r)
		}
	}

	func() {
		defer func() { note(recover()) }()
		_ = s.graph.Stats()
		h.GraphOK = true
	}()

	func() {
		defer func() { note(recover()) }()
		_ = s.cache.Stats()
		h.CacheOK = true
	}()

	func() {
		defer func() { note(recover()) }()
		_, err := pathfind.Search(context.Background(), s.graph, healthProbeUser, healthProbeUser, s.cfg.MaxDepth)
		h.PathfindOK = err == nil
	}()

	h.Healthy = h.GraphOK && h.CacheOK && h.PathfindOK
	return h
}
