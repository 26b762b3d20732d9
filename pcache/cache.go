package pcache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rlindqvist/pathengine/internal/singleflight"
	"github.com/rlindqvist/pathengine/policy"
	"github.com/rlindqvist/pathengine/policy/lru"
)

// ErrNoLoader is returned by GetOrLoad when no Loader was configured in Options.
var ErrNoLoader = errors.New("pcache: no Loader provided")

// cache is a single-lock, in-memory KV store with a pluggable eviction
// policy, lazy TTL expiry, and a periodic sweep that bounds memory held by
// entries nobody has touched since they expired.
//
// All methods are safe for concurrent use by multiple goroutines.
type cache[K comparable, V any] struct {
	mu   sync.Mutex
	m    map[K]*node[K, V]
	head *node[K, V] // MRU
	tail *node[K, V] // LRU
	len  int
	cap  int

	pol policy.ShardPolicy[K, V]
	opt Options[K, V]

	hits   int64
	misses int64
	evicts int64

	lastSweep int64 // UnixNano of the last periodic sweep (construction time until the first one)

	sf singleflight.Group[K, V]
}

// New constructs a Cache with the provided Options.
func New[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	if opt.Capacity <= 0 {
		panic("pcache: Capacity must be > 0")
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Policy == nil {
		opt.Policy = lru.New[K, V]()
	}
	if opt.CleanupInterval <= 0 {
		opt.CleanupInterval = 5 * time.Minute
	}

	c := &cache[K, V]{
		m:   make(map[K]*node[K, V], opt.Capacity),
		cap: opt.Capacity,
		opt: opt,
	}
	c.pol = opt.Policy.New(cacheHooks[K, V]{c: c})
	c.lastSweep = c.nowLocked()
	return c
}

// Add inserts a NEW entry (no update) as MRU via policy hooks.
// Returns false if the key already exists.
func (c *cache[K, V]) Add(k K, v V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepLocked()

	if _, exists := c.m[k]; exists {
		return false
	}
	n := &node[K, V]{key: k, val: v, exp: c.deadlineLocked(c.opt.DefaultTTL)}
	c.m[k] = n
	if ev := c.pol.OnAdd(n); ev != nil {
		c.evictNodeLocked(ev.(*node[K, V]), EvictPolicy)
	}
	c.enforceLimitsLocked()
	return true
}

// Put inserts or updates k→v and promotes the entry according to the policy.
func (c *cache[K, V]) Put(k K, v V) {
	c.putLocked(k, v, c.opt.DefaultTTL)
}

// PutWithTTL inserts or updates k→v with a per-key TTL.
func (c *cache[K, V]) PutWithTTL(k K, v V, ttl time.Duration) {
	c.putLocked(k, v, ttl)
}

func (c *cache[K, V]) putLocked(k K, v V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepLocked()

	// A fresh insertion resets recency and TTL, so an existing node is
	// removed before re-inserting rather than updated in place.
	if old, ok := c.m[k]; ok {
		c.pol.OnRemove(old)
		c.removeNodeLocked(old)
		delete(c.m, k)
	}

	n := &node[K, V]{key: k, val: v, exp: c.deadlineLocked(ttl)}
	c.m[k] = n
	if ev := c.pol.OnAdd(n); ev != nil {
		c.evictNodeLocked(ev.(*node[K, V]), EvictPolicy)
	}
	c.enforceLimitsLocked()
}

// Get returns the value for k and promotes the entry according to the policy.
func (c *cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepLocked()

	n, ok := c.m[k]
	if !ok {
		c.misses++
		c.opt.Metrics.Miss()
		var zero V
		return zero, false
	}
	if c.expiredLocked(n) {
		c.evictNodeLocked(n, EvictTTL)
		c.misses++
		c.opt.Metrics.Miss()
		var zero V
		return zero, false
	}

	n.accessCount++
	c.pol.OnGet(n)
	c.hits++
	c.opt.Metrics.Hit()
	return n.val, true
}

// Delete removes an entry by key. Returns true if the entry existed.
func (c *cache[K, V]) Delete(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.m[k]
	if !ok {
		return false
	}
	c.pol.OnRemove(n)
	c.removeNodeLocked(n)
	delete(c.m, k)
	return true
}

// Clear removes every entry and resets counters.
func (c *cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.m = make(map[K]*node[K, V], c.cap)
	c.head, c.tail = nil, nil
	c.len = 0
	c.hits, c.misses, c.evicts = 0, 0, 0
	c.pol = c.opt.Policy.New(cacheHooks[K, V]{c: c})
}

// Len returns the number of resident entries.
func (c *cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.len
}

// HitRate returns hits / (hits + misses), or 0 if there have been no accesses.
func (c *cache[K, V]) HitRate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.hits + c.misses
	if total == 0 {
		return 0
	}
	return float64(c.hits) / float64(total)
}

// Stats returns a snapshot of size and hit/miss/eviction counters.
func (c *cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	var hr float64
	if total > 0 {
		hr = float64(c.hits) / float64(total)
	}
	return Stats{
		Size:      c.len,
		MaxSize:   c.cap,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evicts,
		HitRate:   hr,
	}
}

// GetOrLoad returns the value for k; on miss it loads via Options.Loader,
// coalescing concurrent loads for the same key (singleflight).
func (c *cache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		var zero V
		return zero, ErrNoLoader
	}

	return c.sf.Do(ctx, k, func() (V, error) {
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		v, err := c.opt.Loader(ctx, k)
		if err == nil {
			c.Put(k, v)
		}
		return v, err
	})
}

// -------------------- internals (mu held) --------------------

func (c *cache[K, V]) expiredLocked(n *node[K, V]) bool {
	if n.exp == 0 {
		return false
	}
	return c.nowLocked() > n.exp
}

func (c *cache[K, V]) nowLocked() int64 {
	if c.opt.Clock != nil {
		return c.opt.Clock.NowUnixNano()
	}
	return time.Now().UnixNano()
}

func (c *cache[K, V]) deadlineLocked(ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}
	return c.nowLocked() + int64(ttl)
}

// sweepLocked reclaims expired entries at most once per CleanupInterval,
// amortising an O(size) walk over infrequent calls. It never runs more
// than once per interval even under heavy Get/Put traffic.
func (c *cache[K, V]) sweepLocked() {
	now := c.nowLocked()
	interval := int64(c.opt.CleanupInterval)
	if now-c.lastSweep < interval {
		return
	}
	c.lastSweep = now

	var expired []*node[K, V]
	for _, n := range c.m {
		if c.expiredLocked(n) {
			expired = append(expired, n)
		}
	}
	for _, n := range expired {
		c.evictNodeLocked(n, EvictTTL)
	}
}

func (c *cache[K, V]) insertFront(n *node[K, V]) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
	c.len++
}

func (c *cache[K, V]) moveToFront(n *node[K, V]) {
	if n == c.head {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if c.tail == n {
		c.tail = n.prev
	}
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *cache[K, V]) removeNodeLocked(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if c.head == n {
		c.head = n.next
	}
	if c.tail == n {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
	c.len--
}

func (c *cache[K, V]) back() *node[K, V] { return c.tail }

func (c *cache[K, V]) evictNodeLocked(n *node[K, V], reason EvictReason) {
	c.pol.OnRemove(n)
	c.removeNodeLocked(n)
	delete(c.m, n.key)
	c.evicts++
	c.opt.Metrics.Evict(reason)
	if cb := c.opt.OnEvict; cb != nil {
		cb(n.key, n.val, reason)
	}
}

// enforceLimitsLocked evicts LRU items until the count limit is satisfied.
func (c *cache[K, V]) enforceLimitsLocked() {
	for c.len > c.cap {
		if tail := c.back(); tail != nil {
			c.evictNodeLocked(tail, EvictCapacity)
		} else {
			break
		}
	}
	c.opt.Metrics.Size(c.len)
}

// -------------------- policy hooks --------------------

// cacheHooks adapts the cache's list operations to policy.Hooks.
type cacheHooks[K comparable, V any] struct{ c *cache[K, V] }

func (h cacheHooks[K, V]) MoveToFront(x policy.Node[K, V]) { h.c.moveToFront(x.(*node[K, V])) }
func (h cacheHooks[K, V]) PushFront(x policy.Node[K, V])   { h.c.insertFront(x.(*node[K, V])) }
func (h cacheHooks[K, V]) Remove(x policy.Node[K, V])      { h.c.removeNodeLocked(x.(*node[K, V])) }
func (h cacheHooks[K, V]) Back() policy.Node[K, V]         { return h.c.back() }
func (h cacheHooks[K, V]) Len() int                        { return h.c.len }
