package osmgraph

import "errors"

var (
	// ErrMalformedRestriction indicates a turn-restriction relation could
	// not be resolved into a node chain (missing member, disconnected
	// ways). The relation is skipped with a warning; Build itself does
	// not fail.
	ErrMalformedRestriction = errors.New("osmgraph: malformed restriction")

	// ErrSourceFailed wraps an error returned by the underlying feature
	// source.
	ErrSourceFailed = errors.New("osmgraph: feature source failed")
)
