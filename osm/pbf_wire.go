package osm

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// rawField is one occurrence of a field within a hand-parsed protobuf
// message. Only the variant matching the field's wire type is populated;
// which one to read is determined by the caller, which already knows the
// schema (fileformat.proto / osmformat.proto) by field number.
type rawField struct {
	typ     protowire.Type
	varint  uint64
	fixed32 uint32
	fixed64 uint64
	bytes   []byte
}

// parseMessage splits b into its top-level fields, keyed by field number,
// preserving the order fields of the same number appeared in (relevant for
// repeated unpacked fields, though OSM PBF sticks to the packed encoding
// for its repeated scalars).
func parseMessage(b []byte) (map[protowire.Number][]rawField, error) {
	fields := make(map[protowire.Number][]rawField)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: bad field tag", ErrMalformedFile)
		}
		b = b[n:]

		var rf rawField
		rf.typ = typ
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: bad varint field", ErrMalformedFile)
			}
			rf.varint = v
			b = b[n:]
		case protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: bad fixed32 field", ErrMalformedFile)
			}
			rf.fixed32 = v
			b = b[n:]
		case protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: bad fixed64 field", ErrMalformedFile)
			}
			rf.fixed64 = v
			b = b[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: bad length-delimited field", ErrMalformedFile)
			}
			rf.bytes = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: unsupported wire type %d", ErrMalformedFile, typ)
			}
			b = b[n:]
		}
		fields[num] = append(fields[num], rf)
	}

	return fields, nil
}

func fieldOne(fields map[protowire.Number][]rawField, num protowire.Number) (rawField, bool) {
	fs := fields[num]
	if len(fs) == 0 {
		return rawField{}, false
	}

	return fs[len(fs)-1], true
}

func fieldBytes(fields map[protowire.Number][]rawField, num protowire.Number) ([]byte, bool) {
	rf, ok := fieldOne(fields, num)
	if !ok || rf.typ != protowire.BytesType {
		return nil, false
	}

	return rf.bytes, true
}

func fieldString(fields map[protowire.Number][]rawField, num protowire.Number) (string, bool) {
	b, ok := fieldBytes(fields, num)

	return string(b), ok
}

func fieldVarint(fields map[protowire.Number][]rawField, num protowire.Number) (uint64, bool) {
	rf, ok := fieldOne(fields, num)
	if !ok || rf.typ != protowire.VarintType {
		return 0, false
	}

	return rf.varint, true
}

func fieldInt32(fields map[protowire.Number][]rawField, num protowire.Number, def int32) int32 {
	v, ok := fieldVarint(fields, num)
	if !ok {
		return def
	}

	return int32(v)
}

func fieldInt64(fields map[protowire.Number][]rawField, num protowire.Number, def int64) int64 {
	v, ok := fieldVarint(fields, num)
	if !ok {
		return def
	}

	return int64(v)
}

func fieldStrings(fields map[protowire.Number][]rawField, num protowire.Number) []string {
	fs := fields[num]
	out := make([]string, 0, len(fs))
	for _, rf := range fs {
		if rf.typ == protowire.BytesType {
			out = append(out, string(rf.bytes))
		}
	}

	return out
}

// decodePackedVarint parses b as a packed repeated varint field's payload
// (a back-to-back sequence of varints with no further framing).
func decodePackedVarint(b []byte) ([]uint64, error) {
	out := make([]uint64, 0, len(b)/2)
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: bad packed varint", ErrMalformedFile)
		}
		out = append(out, v)
		b = b[n:]
	}

	return out, nil
}

// decodePackedZigZag parses b as a packed repeated sint64 field's payload,
// undoing zigzag encoding on each value (used for OSM PBF's delta-coded
// id/lat/lon/refs/memids arrays).
func decodePackedZigZag(b []byte) ([]int64, error) {
	raw, err := decodePackedVarint(b)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(raw))
	for i, v := range raw {
		out[i] = protowire.DecodeZigZag(v)
	}

	return out, nil
}

// packedField returns the payload of a repeated packed field num, or nil if
// absent. Fields not present are not an error: an empty dense-nodes array,
// an untagged way, etc. are all legitimate.
func packedField(fields map[protowire.Number][]rawField, num protowire.Number) []byte {
	b, _ := fieldBytes(fields, num)

	return b
}
