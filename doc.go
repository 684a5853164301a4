// Package osmroute is an OpenStreetMap-based routing library: a
// profile-driven graph builder, a turn-restriction-aware A* search, a
// k-d tree spatial index, and an OSM XML/PBF feature reader.
//
// Subpackages:
//
//	distance/   — Haversine/Euclidean/Taxicab distance functions
//	kdtree/     — static 2-D spatial index over graph nodes
//	graph/      — generic, thread-safe directed weighted graph with a
//	              turn-restriction table
//	astar/      — turn-restriction-aware shortest-path search
//	osm/        — lazy OSM XML/PBF feature reader
//	osmprofile/ — transport-mode capability bundles (Car, Bus, Bicycle,
//	              Foot, Railway, Highway, Skeleton) consulted by the
//	              graph builder
//	osmgraph/   — builds a graph.Graph from an OSM feature stream under a
//	              profile
//	livegraph/  — tile-based lazy extension of a graph by OSM downloads
//	geoexport/  — renders a found route as GeoJSON
//	logging/    — injectable warning logger used by osmgraph/livegraph
//
// A typical pipeline: read features (osm) under a profile (osmprofile),
// build a graph (osmgraph), resolve endpoints via the graph's k-d tree,
// and search with astar.FindRoute.
package osmroute
