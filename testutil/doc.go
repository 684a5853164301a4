// Package testutil builds small synthetic lat/lon lattice graphs for use
// in tests: a regular
// grid of positions spaced by a fixed degree delta, connected 4- or
// 8-directionally, with edge cost equal to haversine distance between
// neighbouring cells.
package testutil
