// Package kdtree provides a static, 2-D k-d tree over (Position, item) pairs
// for sub-linear nearest-neighbour queries, the spatial index osmroute uses
// to resolve a query point to the nearest graph node.
//
// Construction is O(n log n); the tree owns its elements and is immutable
// afterwards — there is no Insert/Delete, matching the "static" index this
// spec calls for. Nearest is evaluated against Haversine distance (the only
// metric that is physically meaningful across latitude), while the internal
// search still splits and prunes in the Euclidean (lat, lon) plane: pruning
// is widened to a great-circle bound so pruning a subtree is never unsound
// even though lat/lon degrees are not commensurable metres (see Nearest's
// doc comment for the exact rule).
package kdtree
