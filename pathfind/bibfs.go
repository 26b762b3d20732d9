package pathfind

import (
	"context"
	"time"
)

// Graph is the capability BiBFS needs from the adjacency store: it never
// assumes sharding, locking, or any other implementation detail beyond
// these two calls.
type Graph interface {
	HasUser(id string) bool
	Neighbors(u string) []string
}

// PathResult is the outcome of a Search call.
type PathResult struct {
	Found                    bool
	Path                     []string
	Distance                 int
	NodesExplored            int
	AlgorithmExecutionTimeMs float64
}

func notFound(nodesExplored int, elapsed time.Duration) PathResult {
	return PathResult{
		Found:                    false,
		Distance:                 -1,
		NodesExplored:            nodesExplored,
		AlgorithmExecutionTimeMs: float64(elapsed) / float64(time.Millisecond),
	}
}

// half is one side of the bidirectional search: a FIFO frontier at the
// current depth, and a parent map doubling as the visited set. A root maps
// to itself, which both marks it visited and terminates the walk-up during
// reconstruction (no edge is ever a self-loop, so a genuine parent can
// never equal its own child).
type half struct {
	frontier []string
	visited  map[string]string
	depth    int
}

func newHalf(root string) *half {
	return &half{
		frontier: []string{root},
		visited:  map[string]string{root: root},
	}
}

// walkFromRoot returns the chain [from, parent(from), ..., root] by
// following parent pointers up to the self-referencing root entry.
func walkFromRoot(visited map[string]string, from string) []string {
	chain := []string{from}
	cur := from
	for {
		parent := visited[cur]
		if parent == cur {
			return chain
		}
		cur = parent
		chain = append(chain, cur)
	}
}

func reverseStrings(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// Search runs bidirectional BFS between start and target, capped at
// maxDepth total hops. It never returns an error for a missing user or an
// unreachable target: both are reported via Found=false, Distance=-1 in
// the returned PathResult, per the no-exceptions error model. The returned
// error is non-nil only if ctx is cancelled mid-search.
func Search(ctx context.Context, g Graph, start, target string, maxDepth int) (PathResult, error) {
	started := time.Now()

	if start == target {
		return PathResult{
			Found:                    true,
			Path:                     []string{start},
			Distance:                 0,
			NodesExplored:            1,
			AlgorithmExecutionTimeMs: float64(time.Since(started)) / float64(time.Millisecond),
		}, nil
	}
	if !g.HasUser(start) || !g.HasUser(target) {
		return notFound(0, time.Since(started)), nil
	}

	halfCap := maxDepth / 2
	forward := newHalf(start)
	backward := newHalf(target)
	nodesExplored := 0

	meeting := ""
	found := false

	for {
		if err := ctx.Err(); err != nil {
			return notFound(nodesExplored, time.Since(started)), err
		}
		if len(forward.frontier) == 0 || len(backward.frontier) == 0 {
			break
		}
		if forward.depth+backward.depth > maxDepth {
			break
		}

		// Pick the half with the smaller frontier; ties favour forward.
		expanding, other := forward, backward
		if len(backward.frontier) < len(forward.frontier) {
			expanding, other = backward, forward
		}
		// Neither half may expand a frontier already at the per-half cap;
		// try the other one before giving up on this round entirely.
		if expanding.depth >= halfCap {
			expanding, other = other, expanding
			if expanding.depth >= halfCap {
				break
			}
		}

		m, explored, stopped := expandLevel(expanding, other, g)
		nodesExplored += explored
		if stopped {
			meeting = m
			found = true
			break
		}
	}

	elapsed := time.Since(started)
	if !found {
		return notFound(nodesExplored, elapsed), nil
	}

	prefix := reverseStrings(walkFromRoot(forward.visited, meeting))
	backwardChain := walkFromRoot(backward.visited, meeting)
	suffix := backwardChain[1:] // meeting point is already in prefix; don't emit it twice

	path := make([]string, 0, len(prefix)+len(suffix))
	path = append(path, prefix...)
	path = append(path, suffix...)

	return PathResult{
		Found:                    true,
		Path:                     path,
		Distance:                 len(path) - 1,
		NodesExplored:            nodesExplored,
		AlgorithmExecutionTimeMs: float64(elapsed) / float64(time.Millisecond),
	}, nil
}

// expandLevel drains every vertex currently in expanding's frontier,
// fetching neighbours from g. A neighbour already visited by other
// signals a meeting point and stops immediately, without finishing the
// rest of the level. Otherwise unvisited neighbours are recorded and
// queued for the next level. Returns the meeting vertex (if any), how
// many vertices were dequeued, and whether a meeting point was found.
func expandLevel(expanding, other *half, g Graph) (meeting string, dequeued int, stopped bool) {
	next := make([]string, 0, len(expanding.frontier))
	for _, u := range expanding.frontier {
		dequeued++
		for _, w := range g.Neighbors(u) {
			if _, ok := other.visited[w]; ok {
				expanding.visited[w] = u
				return w, dequeued, true
			}
			if _, ok := expanding.visited[w]; ok {
				continue
			}
			expanding.visited[w] = u
			next = append(next, w)
		}
	}
	expanding.frontier = next
	expanding.depth++
	return "", dequeued, false
}
