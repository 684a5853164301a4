package kdtree

import "errors"

// ErrNotFound indicates a Nearest query against a tree that holds no items.
var ErrNotFound = errors.New("kdtree: not found")
