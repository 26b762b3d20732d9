// Package pathfind implements bidirectional breadth-first search over a
// sharded adjacency graph (C5): two level-synchronous half-searches,
// forward from start and backward from target, that meet in the middle
// and are reconstructed into a single shortest path.
//
// Capping total depth at a configured diameter is a policy decision, not
// an optimisation: friendship graphs have high branching factor, so a
// single-source search to depth d costs O(b^d) while two searches to
// depth d/2 meeting in the middle cost O(b^(d/2)).
package pathfind
