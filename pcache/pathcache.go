package pcache

import (
	"strings"
	"sync"
	"time"
)

// pathKeyPrefix is the on-the-wire key grammar: "path:" + the lexicographic
// min/max of the two endpoints, joined by ":". Anchoring on the
// ':'-separated segments (rather than naive substring containment) avoids
// over-invalidation when one user_id happens to be a substring of
// another.
const pathKeyPrefix = "path:"

// PathRecord is the value stored by PathCache: a pathfinding result plus
// the endpoint ordering it was computed for and when it was cached.
type PathRecord struct {
	Start                    string
	Target                   string
	Path                     []string
	NodesExplored            int
	AlgorithmExecutionTimeMs float64
	CachedAt                 time.Time
}

// reversed returns a copy of r with Start/Target swapped and Path reversed.
// PathCache.Get uses this to answer a query from the opposite direction
// without mutating the stored record.
func (r PathRecord) reversed() PathRecord {
	rev := make([]string, len(r.Path))
	for i, v := range r.Path {
		rev[len(r.Path)-1-i] = v
	}
	r.Path = rev
	r.Start, r.Target = r.Target, r.Start
	return r
}

// PathCacher is the interface PathService depends on: either a single
// PathCache or a distributedCache fanning the same operations out across
// multiple nodes.
type PathCacher interface {
	Get(a, b string) (PathRecord, bool)
	Put(a, b string, rec PathRecord)
	InvalidateUser(u string) int
	Len() int
	Stats() Stats
}

// PathCache specializes Cache[string, PathRecord] with endpoint-symmetric
// keys and per-user invalidation via a secondary user_id -> keys index,
// avoiding a full key scan on every invalidation.
type PathCache struct {
	store Cache[string, PathRecord]
	clock Clock

	mu    sync.Mutex
	index map[string]map[string]struct{} // user_id -> set of cache keys touching it
}

// NewPathCache constructs a PathCache. opt.Capacity and opt.DefaultTTL map
// directly to the service's cache_max_size and path_ttl settings.
func NewPathCache(opt Options[string, PathRecord]) *PathCache {
	return &PathCache{
		store: New[string, PathRecord](opt),
		clock: opt.Clock,
		index: make(map[string]map[string]struct{}),
	}
}

func pathKey(a, b string) string {
	lo, hi := a, b
	if hi < lo {
		lo, hi = hi, lo
	}
	return pathKeyPrefix + lo + ":" + hi
}

// splitPathKey recovers the two endpoints from a cache key, anchored on
// the ':'-separated grammar rather than a substring match.
func splitPathKey(key string) (lo, hi string, ok bool) {
	rest, found := strings.CutPrefix(key, pathKeyPrefix)
	if !found {
		return "", "", false
	}
	i := strings.IndexByte(rest, ':')
	if i < 0 {
		return "", "", false
	}
	return rest[:i], rest[i+1:], true
}

func (p *PathCache) now() time.Time {
	if p.clock != nil {
		return time.Unix(0, p.clock.NowUnixNano())
	}
	return time.Now()
}

// Get fetches the cached record for (a,b). If the stored record's Start
// differs from the queried a, a copy with the path reversed and
// start/target swapped is returned; the stored record is never mutated.
func (p *PathCache) Get(a, b string) (PathRecord, bool) {
	rec, ok := p.store.Get(pathKey(a, b))
	if !ok {
		return PathRecord{}, false
	}
	if rec.Start != a {
		rec = rec.reversed()
	}
	return rec, true
}

// Put stores rec under key(a,b), stamping Start=a, Target=b, CachedAt=now.
func (p *PathCache) Put(a, b string, rec PathRecord) {
	key := pathKey(a, b)
	rec.Start, rec.Target = a, b
	rec.CachedAt = p.now()
	p.store.Put(key, rec)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.addIndexLocked(a, key)
	p.addIndexLocked(b, key)
}

func (p *PathCache) addIndexLocked(user, key string) {
	set, ok := p.index[user]
	if !ok {
		set = make(map[string]struct{})
		p.index[user] = set
	}
	set[key] = struct{}{}
}

// InvalidateUser deletes every cached entry whose key involves u and
// returns how many entries were removed. After it returns, no subsequent
// Get(u, ·) or Get(·, u) can observe a stale entry.
func (p *PathCache) InvalidateUser(u string) int {
	p.mu.Lock()
	keys := p.index[u]
	keyList := make([]string, 0, len(keys))
	for k := range keys {
		keyList = append(keyList, k)
	}
	delete(p.index, u)
	p.mu.Unlock()

	removed := 0
	for _, key := range keyList {
		if p.store.Delete(key) {
			removed++
		}

		lo, hi, ok := splitPathKey(key)
		if !ok {
			continue
		}
		other := lo
		if lo == u {
			other = hi
		}
		p.mu.Lock()
		if set, exists := p.index[other]; exists {
			delete(set, key)
			if len(set) == 0 {
				delete(p.index, other)
			}
		}
		p.mu.Unlock()
	}
	return removed
}

// Len returns the number of resident path entries.
func (p *PathCache) Len() int { return p.store.Len() }

// Stats returns a snapshot of the underlying cache's counters.
func (p *PathCache) Stats() Stats { return p.store.Stats() }
