package astar

import "errors"

var (
	// ErrNotFound indicates start or end does not exist in the graph.
	ErrNotFound = errors.New("astar: node not found")

	// ErrStepLimitExceeded indicates the search popped more states than the
	// configured step limit without reaching the goal.
	ErrStepLimitExceeded = errors.New("astar: step limit exceeded")
)
