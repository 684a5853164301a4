package osm

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

const (
	blobHeaderTypeNum     = 1
	blobHeaderDataSizeNum = 3

	blobRawNum     = 1
	blobRawSizeNum = 2
	blobZlibNum    = 3
	blobLzmaNum    = 4
	blobLZ4Num     = 6
	blobZstdNum    = 7

	headerRequiredFeaturesNum = 4

	stringTableNum = 1

	primitiveBlockGroupNum     = 2
	primitiveBlockGranularity  = 17
	primitiveBlockLatOffsetNum = 19
	primitiveBlockLonOffsetNum = 20

	groupNodesNum     = 1
	groupDenseNum     = 2
	groupWaysNum      = 3
	groupRelationsNum = 4

	nodeIDNum   = 1
	nodeKeysNum = 2
	nodeValsNum = 3
	nodeLatNum  = 8
	nodeLonNum  = 9

	denseIDNum       = 1
	denseLatNum      = 8
	denseLonNum      = 9
	denseKeysValsNum = 10

	wayIDNum   = 1
	wayKeysNum = 2
	wayValsNum = 3
	wayRefsNum = 8

	relIDNum       = 1
	relKeysNum     = 2
	relValsNum     = 3
	relRolesSIDNum = 8
	relMemIDsNum   = 9
	relTypesNum    = 10

	defaultGranularity = 100
)

// recognisedRequiredFeatures are the OSMHeader required_features values
// this reader understands.
var recognisedRequiredFeatures = map[string]bool{
	"OsmSchema-V0.6": true,
	"DenseNodes":     true,
}

// pbfReader implements reader over an OSM PBF stream, one blob at a time.
type pbfReader struct {
	r       io.Reader
	pending []Feature
	idx     int
	done    bool
}

func newPBFReader(r io.Reader) *pbfReader {
	return &pbfReader{r: r}
}

// Next returns the next feature, or io.EOF when the stream is exhausted.
func (p *pbfReader) Next() (Feature, error) {
	for p.idx >= len(p.pending) {
		if p.done {
			return Feature{}, io.EOF
		}
		if err := p.fill(); err != nil {
			return Feature{}, err
		}
	}
	f := p.pending[p.idx]
	p.idx++

	return f, nil
}

// fill reads and decodes blobs until one yields features, EOF is reached,
// or an error occurs. Non-data blobs (the OSMHeader, unrecognised blob
// types) are consumed without producing features, so fill may need more
// than one blob read to make progress.
func (p *pbfReader) fill() error {
	for {
		blobType, payload, err := p.readBlob()
		if err == io.EOF {
			p.done = true

			return nil
		}
		if err != nil {
			return err
		}

		switch blobType {
		case "OSMHeader":
			if err := checkHeaderBlock(payload); err != nil {
				return err
			}
			// Header blobs never carry features; keep reading.
		case "OSMData":
			feats, err := decodePrimitiveBlock(payload)
			if err != nil {
				return err
			}
			p.pending = feats
			p.idx = 0

			return nil
		default:
			// Unknown blob type: skip it and keep reading.
		}
	}
}

// readBlob reads one length-prefixed BlobHeader+Blob pair and returns the
// blob's declared type and decompressed payload.
func (p *pbfReader) readBlob() (string, []byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(p.r, lenBuf[:]); err != nil {
		if err == io.EOF {
			return "", nil, io.EOF
		}

		return "", nil, fmt.Errorf("%w: reading blob header length: %v", ErrIO, err)
	}
	headerLen := binary.BigEndian.Uint32(lenBuf[:])
	if headerLen == 0 || headerLen > 64*1024 {
		return "", nil, fmt.Errorf("%w: implausible blob header length %d", ErrMalformedFile, headerLen)
	}

	headerBuf := make([]byte, headerLen)
	if _, err := io.ReadFull(p.r, headerBuf); err != nil {
		return "", nil, fmt.Errorf("%w: truncated blob header: %v", ErrMalformedFile, err)
	}
	headerFields, err := parseMessage(headerBuf)
	if err != nil {
		return "", nil, err
	}
	blobType, ok := fieldString(headerFields, blobHeaderTypeNum)
	if !ok {
		return "", nil, fmt.Errorf("%w: blob header missing type", ErrMalformedFile)
	}
	dataSize, ok := fieldVarint(headerFields, blobHeaderDataSizeNum)
	if !ok {
		return "", nil, fmt.Errorf("%w: blob header missing datasize", ErrMalformedFile)
	}

	blobBuf := make([]byte, dataSize)
	if _, err := io.ReadFull(p.r, blobBuf); err != nil {
		return "", nil, fmt.Errorf("%w: truncated blob: %v", ErrMalformedFile, err)
	}
	payload, err := decodeBlob(blobBuf)
	if err != nil {
		return "", nil, err
	}

	return blobType, payload, nil
}

// decodeBlob parses a Blob message and returns its decompressed payload.
func decodeBlob(b []byte) ([]byte, error) {
	fields, err := parseMessage(b)
	if err != nil {
		return nil, err
	}

	wantSize, hasWantSize := fieldVarint(fields, blobRawSizeNum)

	if raw, ok := fieldBytes(fields, blobRawNum); ok {
		return raw, nil
	}
	if zdata, ok := fieldBytes(fields, blobZlibNum); ok {
		zr, err := zlib.NewReader(bytes.NewReader(zdata))
		if err != nil {
			return nil, fmt.Errorf("%w: zlib: %v", ErrMalformedFile, err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("%w: zlib: %v", ErrMalformedFile, err)
		}
		if hasWantSize && uint64(len(out)) != wantSize {
			return nil, fmt.Errorf("%w: zlib payload size mismatch", ErrMalformedFile)
		}

		return out, nil
	}
	if zdata, ok := fieldBytes(fields, blobZstdNum); ok {
		zr, err := zstd.NewReader(bytes.NewReader(zdata))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrMalformedFile, err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrMalformedFile, err)
		}
		if hasWantSize && uint64(len(out)) != wantSize {
			return nil, fmt.Errorf("%w: zstd payload size mismatch", ErrMalformedFile)
		}

		return out, nil
	}
	if _, ok := fieldBytes(fields, blobLzmaNum); ok {
		return nil, ErrUnsupportedCompression
	}
	if _, ok := fieldBytes(fields, blobLZ4Num); ok {
		return nil, ErrUnsupportedCompression
	}

	return nil, fmt.Errorf("%w: blob has no recognised payload field", ErrMalformedFile)
}

// checkHeaderBlock validates an OSMHeader blob's required_features against
// the recognised set.
func checkHeaderBlock(b []byte) error {
	fields, err := parseMessage(b)
	if err != nil {
		return err
	}
	for _, feat := range fieldStrings(fields, headerRequiredFeaturesNum) {
		if !recognisedRequiredFeatures[feat] {
			return fmt.Errorf("%w: %s", ErrUnsupportedFeature, feat)
		}
	}

	return nil
}

// decodePrimitiveBlock parses a PrimitiveBlock message into its constituent
// Features, resolving every string-table index and delta-coded array
// along the way.
func decodePrimitiveBlock(b []byte) ([]Feature, error) {
	fields, err := parseMessage(b)
	if err != nil {
		return nil, err
	}

	stBytes, ok := fieldBytes(fields, stringTableNum)
	if !ok {
		return nil, fmt.Errorf("%w: primitive block missing string table", ErrMalformedFile)
	}
	stFields, err := parseMessage(stBytes)
	if err != nil {
		return nil, err
	}
	rawStrs := stFields[1]
	stringTable := make([]string, len(rawStrs))
	for i, rf := range rawStrs {
		stringTable[i] = string(rf.bytes)
	}

	granularity := fieldInt32(fields, primitiveBlockGranularity, defaultGranularity)
	latOffset := fieldInt64(fields, primitiveBlockLatOffsetNum, 0)
	lonOffset := fieldInt64(fields, primitiveBlockLonOffsetNum, 0)

	var out []Feature
	for _, grpRF := range fields[primitiveBlockGroupNum] {
		feats, err := decodePrimitiveGroup(grpRF.bytes, stringTable, granularity, latOffset, lonOffset)
		if err != nil {
			return nil, err
		}
		out = append(out, feats...)
	}

	return out, nil
}

func coord(offset int64, granularity int32, raw int64) float64 {
	return 1e-9 * (float64(offset) + float64(granularity)*float64(raw))
}

func decodePrimitiveGroup(b []byte, strs []string, granularity int32, latOffset, lonOffset int64) ([]Feature, error) {
	fields, err := parseMessage(b)
	if err != nil {
		return nil, err
	}

	var out []Feature

	for _, rf := range fields[groupNodesNum] {
		n, err := decodePlainNode(rf.bytes, strs, granularity, latOffset, lonOffset)
		if err != nil {
			return nil, err
		}
		out = append(out, Feature{Node: n})
	}

	if denseRF, ok := fieldOne(fields, groupDenseNum); ok {
		nodes, err := decodeDenseNodes(denseRF.bytes, strs, granularity, latOffset, lonOffset)
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			n := n
			out = append(out, Feature{Node: &n})
		}
	}

	for _, rf := range fields[groupWaysNum] {
		w, err := decodeWay(rf.bytes, strs)
		if err != nil {
			return nil, err
		}
		out = append(out, Feature{Way: w})
	}

	for _, rf := range fields[groupRelationsNum] {
		r, err := decodeRelation(rf.bytes, strs)
		if err != nil {
			return nil, err
		}
		out = append(out, Feature{Relation: r})
	}

	return out, nil
}
