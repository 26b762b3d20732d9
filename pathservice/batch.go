package pathservice

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pair is one (start, target) query in a batch.
type Pair struct {
	Start  string
	Target string
}

func pairKey(p Pair) string { return p.Start + ":" + p.Target }

// BatchPathfinding runs FindPath for every pair, honouring maxConcurrent as
// a worker-pool size hint. The contract is the sequential semantics: the
// returned map is keyed "start:target" and its contents are identical to
// calling FindPath for each pair one at a time, only the wall-clock
// parallelism differs. maxConcurrent <= 0 defaults to 10.
func (s *Service) BatchPathfinding(ctx context.Context, pairs []Pair, maxConcurrent int) map[string]FindPathResult {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	results := make(map[string]FindPathResult, len(pairs))
	resultsByIndex := make([]FindPathResult, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, p := range pairs {
		i, p := i, p
		g.Go(func() error {
			resultsByIndex[i] = s.FindPath(gctx, p.Start, p.Target, true)
			return nil
		})
	}
	_ = g.Wait() // FindPath never returns an error through this path; nothing to propagate

	for i, p := range pairs {
		results[pairKey(p)] = resultsByIndex[i]
	}
	return results
}
