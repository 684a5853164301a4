// Package graph is the generic directed, weighted, position-bearing graph
// osmroute's A* search runs over.
//
// Graph[K] is parameterised over an arbitrary comparable key type K rather
// than a fixed id type; the OSM-specific instantiation fixes K = int64.
// Nodes carry a Position; edges carry a finite, non-negative Cost. Multi-edges
// between the same ordered pair are collapsed to their minimum cost as they
// are inserted — there is no later deduplication pass.
//
// Graph additionally owns a RestrictionTable (empty by default) and a
// lazily-built k-d tree for NearestNode, so a Graph alone is a complete
// implementation of the astar.Graph / astar.TurnRestrictor / NearestNode
// consumer surface the routing layer expects.
package graph
