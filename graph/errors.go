package graph

import "errors"

// Sentinel errors for graph operations, one per distinct failure concern.
var (
	// ErrNodeNotFound indicates GetNode referenced a node id that was never inserted.
	ErrNodeNotFound = errors.New("graph: node not found")

	// ErrBadCost indicates an edge was inserted with a non-finite or negative cost.
	ErrBadCost = errors.New("graph: edge cost must be finite and non-negative")

	// ErrEmptyChain indicates a turn restriction was registered with a prefix
	// of fewer than two nodes or with no target, i.e. a chain of fewer than
	// three nodes.
	ErrEmptyChain = errors.New("graph: turn restriction chain must have at least three nodes")
)
