// Package astar implements a turn-restriction-aware A* search: a generic
// shortest-path procedure over anything implementing the narrow Graph
// protocol below, plus a variant that additionally forbids doubling back
// along the edge just arrived on.
//
// The search state is (previous, current) rather than current alone, so
// that turn restrictions keyed on a traversed prefix can be enforced
// without materialising an edge-expanded graph. The closed set, open
// heap, and tie-breaking are all keyed on that same state.
package astar
