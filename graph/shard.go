package graph

import (
	"sync"

	"github.com/rlindqvist/pathengine/internal/util"
)

// shard owns a disjoint subset of users and their adjacency lists,
// guarded by its own RWMutex. It never acquires another shard's lock.
type shard struct {
	id        int
	numShards int

	mu    sync.RWMutex
	users map[string]*User
	adj   map[string]map[string]struct{}

	_          util.CacheLinePad
	userCount  util.PaddedAtomicInt64
	localEdges util.PaddedAtomicInt64
	crossEdges util.PaddedAtomicInt64
}

func newShard(id, numShards int) *shard {
	return &shard{
		id:        id,
		numShards: numShards,
		users:     make(map[string]*User),
		adj:       make(map[string]map[string]struct{}),
	}
}

// insertUser adds u if its id is new. Returns false if the user already
// existed (AddUser is idempotent at the Graph level).
func (s *shard) insertUser(u *User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.UserID]; exists {
		return false
	}
	s.users[u.UserID] = u
	s.adj[u.UserID] = make(map[string]struct{})
	s.userCount.Add(1)
	return true
}

func (s *shard) hasUser(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[id]
	return ok
}

func (s *shard) getUser(id string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// insertEdgeEndpoint records that u is now adjacent to peer, where u is
// owned by this shard. peerShard classifies the edge as local or cross for
// the stats counters. Returns false if u is unknown to this shard or the
// endpoint already existed.
func (s *shard) insertEdgeEndpoint(u, peer string, peerShard int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.adj[u]
	if !ok {
		return false
	}
	if _, exists := set[peer]; exists {
		return false
	}
	set[peer] = struct{}{}
	if peerShard == s.id {
		s.localEdges.Add(1)
	} else {
		s.crossEdges.Add(1)
	}
	return true
}

// removeEdgeEndpoint drops peer from u's adjacency set. Returns false if u
// is unknown to this shard or the endpoint was not present.
func (s *shard) removeEdgeEndpoint(u, peer string, peerShard int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.adj[u]
	if !ok {
		return false
	}
	if _, exists := set[peer]; !exists {
		return false
	}
	delete(set, peer)
	if peerShard == s.id {
		s.localEdges.Add(-1)
	} else {
		s.crossEdges.Add(-1)
	}
	return true
}

// neighbors returns a defensive copy of u's adjacency set, or nil if u is
// unknown to this shard. Callers never hold this shard's lock afterward.
func (s *shard) neighbors(u string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.adj[u]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	return out
}

func (s *shard) stats() ShardStats {
	return ShardStats{
		ShardID:    s.id,
		Users:      int(s.userCount.Load()),
		LocalEdges: s.localEdges.Load(),
		CrossEdges: s.crossEdges.Load(),
	}
}
