package osm

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
)

// featureSource is the narrow protocol both concrete decoders satisfy.
type featureSource interface {
	Next() (Feature, error)
}

// Reader produces OSM Feature records lazily from an underlying stream.
// Construct with ReadFeatures; call Next repeatedly until it returns
// io.EOF.
type Reader struct {
	src featureSource
}

// Next returns the next feature, or io.EOF once the stream is exhausted.
func (r *Reader) Next() (Feature, error) {
	return r.src.Next()
}

// ReadFeatures opens a streaming reader over r according to format. With
// FormatAuto (or FormatGZIP/FormatBZIP2), the outer compression wrapper is
// peeled off (if any) before the inner XML/PBF format is itself sniffed
// from its leading bytes.
func ReadFeatures(r io.Reader, format Format) (*Reader, error) {
	switch format {
	case FormatGZIP:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip: %v", ErrMalformedFile, err)
		}

		return ReadFeatures(gr, FormatAuto)
	case FormatBZIP2:
		return ReadFeatures(bzip2.NewReader(r), FormatAuto)
	case FormatXML:
		return &Reader{src: newXMLReader(r)}, nil
	case FormatPBF:
		return &Reader{src: newPBFReader(r)}, nil
	case FormatAuto:
		return detectAndRead(r)
	default:
		return nil, fmt.Errorf("%w: unknown format %d", ErrUnknownFormat, format)
	}
}

// detectAndRead peeks at the stream's leading bytes to tell apart gzip,
// bzip2, PBF, and XML, then dispatches to the matching decoder.
func detectAndRead(r io.Reader) (*Reader, error) {
	br := bufio.NewReaderSize(r, 4096)
	magic, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	switch {
	case len(magic) >= 2 && magic[0] == 0x1f && magic[1] == 0x8b:
		return ReadFeatures(br, FormatGZIP)
	case len(magic) >= 3 && magic[0] == 'B' && magic[1] == 'Z' && magic[2] == 'h':
		return ReadFeatures(br, FormatBZIP2)
	case looksLikePBF(magic):
		return ReadFeatures(br, FormatPBF)
	case len(magic) >= 1 && magic[0] == '<':
		return ReadFeatures(br, FormatXML)
	default:
		return nil, ErrUnknownFormat
	}
}

// looksLikePBF reports whether magic — the stream's first bytes — matches
// a plausible PBF blob-header length prefix: a big-endian uint32 too small
// to be an XML document's leading whitespace/BOM/'<' byte, and large
// enough to hold a minimal BlobHeader.
func looksLikePBF(magic []byte) bool {
	if len(magic) < 4 {
		return false
	}
	n := uint32(magic[0])<<24 | uint32(magic[1])<<16 | uint32(magic[2])<<8 | uint32(magic[3])
	// BlobHeader's first byte of every real-world PBF extract is a small
	// length prefix (a handful of bytes up to a few hundred). An XML
	// document starts with '<', a BOM byte or whitespace, all non-zero, so
	// its first four bytes read as a length of at least 16 MiB and fall
	// outside this range. Reject degenerate 0.
	return n > 0 && n < 64*1024
}
