package osm

import "errors"

var (
	// ErrMalformedFeature indicates a single record (node/way/relation) had
	// an ill-formed attribute (e.g. a non-numeric lat/lon or id). Next
	// returns it in place of the offending record; a later call to Next
	// continues with the following record.
	ErrMalformedFeature = errors.New("osm: malformed feature")

	// ErrUnsupportedFeature indicates a PBF OSMHeader advertised a required
	// feature string outside {OsmSchema-V0.6, DenseNodes}. Fatal.
	ErrUnsupportedFeature = errors.New("osm: unsupported required feature")

	// ErrUnsupportedCompression indicates a PBF Blob used lzma_data or
	// lz4_data, neither of which this reader decompresses.
	ErrUnsupportedCompression = errors.New("osm: unsupported blob compression")

	// ErrMalformedFile indicates truncated or structurally invalid framing
	// (a short length prefix, a BlobHeader/Blob that doesn't parse, a
	// PrimitiveBlock with inconsistent array lengths). Fatal.
	ErrMalformedFile = errors.New("osm: malformed file")

	// ErrIO wraps an underlying I/O error from the input stream.
	ErrIO = errors.New("osm: io error")

	// ErrUnknownFormat indicates FormatAuto could not determine whether the
	// stream holds XML or PBF from its leading bytes.
	ErrUnknownFormat = errors.New("osm: unable to detect format")
)
