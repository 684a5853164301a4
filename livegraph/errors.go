package livegraph

import "errors"

var (
	// ErrFetchFailed wraps a tile fetch that exhausted its retry budget
	// against a non-404 HTTP failure or a transport error.
	ErrFetchFailed = errors.New("livegraph: tile fetch failed")

	// ErrLockTimeout indicates another process (or goroutine) held a
	// tile's lock file for longer than the caller was willing to wait.
	ErrLockTimeout = errors.New("livegraph: timed out waiting for tile lock")

	// ErrCacheIO wraps an error reading or writing the on-disk tile cache.
	ErrCacheIO = errors.New("livegraph: cache io error")
)
