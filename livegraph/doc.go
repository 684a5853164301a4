// Package livegraph implements a tile-based live graph: a
// *graph.Graph[int64] that lazily extends itself by downloading OSM tiles
// around queried positions instead of requiring the whole dataset up
// front.
//
// Tiles are identified by the standard Web Mercator slippy convention
// (z, x, y), default zoom 15. Ensuring a position loaded pulls in the
// enclosing tile and its 8-neighbour ring; already-loaded tiles (tracked
// in-process) and a fresh on-disk cache entry both short-circuit the
// network fetch. The on-disk cache is a directory tree keyed by
// profile_id/z/x/y.osm plus a goccy/go-json sidecar recording fetch time,
// guarded per-tile by an advisory lock file so two processes never fetch
// the same tile concurrently. Fetches go through a fasthttp client against
// a configurable OSM XML export endpoint; non-404 HTTP failures are
// retried with exponential backoff, 404 is treated as an empty tile.
package livegraph
