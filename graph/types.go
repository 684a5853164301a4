package graph

import (
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/osmroute/distance"
	"github.com/katalvlaran/osmroute/kdtree"
)

// Node is a graph vertex: an opaque external id plus its Position. Nodes
// are immutable once inserted.
type Node[K comparable] struct {
	ID  K
	Pos distance.Position
}

// Edge is a directed (from, to) pair with a finite, non-negative Cost, as
// returned by EdgesFrom — the From endpoint is implicit in the query.
type Edge[K comparable] struct {
	To   K
	Cost float64
}

// Graph is a generic, in-memory directed weighted graph. The zero value is
// not usable; construct with New. Two separate RWMutexes — one for the
// node set, one for edges/adjacency/the k-d tree cache — minimise
// contention between concurrent readers, since node inserts and edge
// inserts rarely need to block each other.
type Graph[K comparable] struct {
	muNodes sync.RWMutex
	nodes   map[K]Node[K]

	muEdges sync.RWMutex
	adj     map[K]map[K]float64 // adj[from][to] = min cost seen so far

	muTree    sync.Mutex
	tree      *kdtree.Tree[K]
	treeDirty bool

	restrictions *RestrictionTable[K]
}

// New constructs an empty Graph.
func New[K comparable]() *Graph[K] {
	return &Graph[K]{
		nodes:        make(map[K]Node[K]),
		adj:          make(map[K]map[K]float64),
		treeDirty:    true,
		restrictions: NewRestrictionTable[K](),
	}
}

// AddNode inserts n, or is a no-op if n.ID already exists (the first
// inserted Position for a given id wins; callers that need to update a
// position must build a new Graph — nodes are immutable once inserted).
func (g *Graph[K]) AddNode(n Node[K]) {
	g.muNodes.Lock()
	defer g.muNodes.Unlock()
	if _, exists := g.nodes[n.ID]; exists {
		return
	}
	g.nodes[n.ID] = n

	g.muTree.Lock()
	g.treeDirty = true
	g.muTree.Unlock()
}

// HasNode reports whether id has been inserted.
func (g *Graph[K]) HasNode(id K) bool {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	_, ok := g.nodes[id]

	return ok
}

// GetNode returns the Node for id, or ErrNodeNotFound.
func (g *Graph[K]) GetNode(id K) (Node[K], error) {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return Node[K]{}, fmt.Errorf("%w: %v", ErrNodeNotFound, id)
	}

	return n, nil
}

// NodeCount returns the number of inserted nodes.
func (g *Graph[K]) NodeCount() int {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()

	return len(g.nodes)
}

// AddEdge inserts a directed edge from->to with the given cost. Both
// endpoints must already exist as nodes (ErrNodeNotFound otherwise); cost
// must be finite and non-negative (ErrBadCost otherwise). A second AddEdge
// for the same ordered pair keeps only the minimum cost seen — parallel
// ways between the same two nodes collapse to their cheapest cost as they
// are inserted, so the graph never transiently holds a multi-edge.
func (g *Graph[K]) AddEdge(from, to K, cost float64) error {
	if !isFiniteNonNegative(cost) {
		return fmt.Errorf("%w: %v", ErrBadCost, cost)
	}
	if !g.HasNode(from) {
		return fmt.Errorf("%w: %v", ErrNodeNotFound, from)
	}
	if !g.HasNode(to) {
		return fmt.Errorf("%w: %v", ErrNodeNotFound, to)
	}

	g.muEdges.Lock()
	defer g.muEdges.Unlock()
	inner, ok := g.adj[from]
	if !ok {
		inner = make(map[K]float64)
		g.adj[from] = inner
	}
	if existing, ok := inner[to]; !ok || cost < existing {
		inner[to] = cost
	}

	return nil
}

func isFiniteNonNegative(f float64) bool {
	return f >= 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// EdgesFrom returns (neighbour, cost) pairs for every outgoing edge of id.
// An id with no outgoing edges (or that does not exist) yields an empty,
// non-nil slice — EdgesFrom never itself fails with NotFound, since a
// dead-end node is not an error condition for the search consuming it.
func (g *Graph[K]) EdgesFrom(id K) []Edge[K] {
	g.muEdges.RLock()
	defer g.muEdges.RUnlock()
	inner := g.adj[id]
	out := make([]Edge[K], 0, len(inner))
	for to, cost := range inner {
		out = append(out, Edge[K]{To: to, Cost: cost})
	}

	return out
}

// EdgeCost returns the cost of the from->to edge and whether it exists.
func (g *Graph[K]) EdgeCost(from, to K) (float64, bool) {
	g.muEdges.RLock()
	defer g.muEdges.RUnlock()
	c, ok := g.adj[from][to]

	return c, ok
}

// Restrictions exposes the graph's turn-restriction table for the builder
// to populate and for IsTurnRestricted to query. The table is exclusively
// owned by the Graph once built.
func (g *Graph[K]) Restrictions() *RestrictionTable[K] {
	return g.restrictions
}

// IsTurnRestricted implements astar.TurnRestrictor by delegating to the
// graph's RestrictionTable.
func (g *Graph[K]) IsTurnRestricted(prefix []K) Decision[K] {
	return g.restrictions.Lookup(prefix)
}

// LongestChain implements astar.ChainDepth by delegating to the graph's
// RestrictionTable, so the search knows how far back along the path it
// needs to look without having to ask for more context than was ever
// recorded.
func (g *Graph[K]) LongestChain() int {
	return g.restrictions.LongestChain()
}

// NearestNode returns the node closest to query by Haversine distance,
// lazily (re)building the backing k-d tree on first use after the node set
// changes. Fails with kdtree.ErrNotFound on an empty graph.
func (g *Graph[K]) NearestNode(query distance.Position) (Node[K], error) {
	g.muTree.Lock()
	if g.treeDirty {
		g.muNodes.RLock()
		items := make([]kdtree.Item[K], 0, len(g.nodes))
		for id, n := range g.nodes {
			items = append(items, kdtree.Item[K]{Pos: n.Pos, Value: id})
		}
		g.muNodes.RUnlock()
		g.tree = kdtree.New(items)
		g.treeDirty = false
	}
	tree := g.tree
	g.muTree.Unlock()

	id, err := tree.Nearest(query)
	if err != nil {
		return Node[K]{}, err
	}

	return g.GetNode(id)
}
