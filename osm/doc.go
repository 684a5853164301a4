// Package osm implements a streaming OSM feature reader: a single entry
// point, ReadFeatures, that turns an OSM XML or OSM PBF byte stream into a
// lazily-produced sequence of Node/Way/Relation records, with transparent
// gzip/bzip2 unwrapping and automatic format detection.
//
// Both decoders are streaming: XML dispatches on encoding/xml tokens
// element-by-element, and PBF processes one length-prefixed blob at a time,
// so memory use is bounded by the largest single blob/element rather than
// by the whole file.
package osm
