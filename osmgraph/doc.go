// Package osmgraph implements the OSM graph builder: it consumes a lazy
// OSM feature stream (package osm) under a transport profile (package
// osmprofile) and produces a *graph.Graph[int64] whose edges and
// turn-restriction table are correct for routing with that profile.
//
// Build reads the feature stream exactly once in three passes: a first
// pass records every node's position and every way's node list (needed
// later to resolve turn-restriction member chains, whether or not the way
// itself is accepted) and the profile's acceptance decision per way; a
// second stage emits edges for the accepted ways; a third stage resolves
// each turn-restriction relation into a node-prefix chain and inserts it
// into the graph's restriction table.
package osmgraph
