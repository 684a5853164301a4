package osm

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

func decodeTagsFromBytes(keysBytes, valsBytes []byte, strs []string) (map[string]string, error) {
	if len(keysBytes) == 0 && len(valsBytes) == 0 {
		return nil, nil
	}
	keys, err := decodePackedVarint(keysBytes)
	if err != nil {
		return nil, err
	}
	vals, err := decodePackedVarint(valsBytes)
	if err != nil {
		return nil, err
	}
	if len(keys) != len(vals) {
		return nil, fmt.Errorf("%w: mismatched keys/vals length", ErrMalformedFile)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	tags := make(map[string]string, len(keys))
	for i := range keys {
		k, err := stringAt(strs, keys[i])
		if err != nil {
			return nil, err
		}
		v, err := stringAt(strs, vals[i])
		if err != nil {
			return nil, err
		}
		tags[k] = v
	}

	return tags, nil
}

func stringAt(strs []string, idx uint64) (string, error) {
	if idx >= uint64(len(strs)) {
		return "", fmt.Errorf("%w: string table index %d out of range", ErrMalformedFile, idx)
	}

	return strs[idx], nil
}

func decodePlainNode(b []byte, strs []string, granularity int32, latOffset, lonOffset int64) (*Node, error) {
	fields, err := parseMessage(b)
	if err != nil {
		return nil, err
	}
	id, ok := fieldVarint(fields, nodeIDNum)
	if !ok {
		return nil, fmt.Errorf("%w: node missing id", ErrMalformedFile)
	}
	rawLat, _ := fieldVarint(fields, nodeLatNum)
	rawLon, _ := fieldVarint(fields, nodeLonNum)
	lat := coord(latOffset, granularity, protowire.DecodeZigZag(rawLat))
	lon := coord(lonOffset, granularity, protowire.DecodeZigZag(rawLon))

	tags, err := decodeTagsFromBytes(packedField(fields, nodeKeysNum), packedField(fields, nodeValsNum), strs)
	if err != nil {
		return nil, err
	}

	return &Node{ID: int64(id), Lat: lat, Lon: lon, Tags: tags}, nil
}

func decodeDenseNodes(b []byte, strs []string, granularity int32, latOffset, lonOffset int64) ([]Node, error) {
	fields, err := parseMessage(b)
	if err != nil {
		return nil, err
	}
	ids, err := decodePackedZigZag(packedField(fields, denseIDNum))
	if err != nil {
		return nil, err
	}
	lats, err := decodePackedZigZag(packedField(fields, denseLatNum))
	if err != nil {
		return nil, err
	}
	lons, err := decodePackedZigZag(packedField(fields, denseLonNum))
	if err != nil {
		return nil, err
	}
	if len(ids) != len(lats) || len(ids) != len(lons) {
		return nil, fmt.Errorf("%w: dense nodes array length mismatch", ErrMalformedFile)
	}

	tagsPerNode, err := decodeDenseTags(packedField(fields, denseKeysValsNum), strs, len(ids))
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, len(ids))
	var id, lat, lon int64
	for i := range ids {
		id += ids[i]
		lat += lats[i]
		lon += lons[i]
		nodes[i] = Node{
			ID:   id,
			Lat:  coord(latOffset, granularity, lat),
			Lon:  coord(lonOffset, granularity, lon),
			Tags: tagsPerNode[i],
		}
	}

	return nodes, nil
}

// decodeDenseTags splits DenseNodes.keys_vals, a flat stream of
// (key_sid, val_sid, ..., 0, ...) where a literal 0 terminates each node's
// tag run, into one tag map per node. An empty keys_vals means no dense
// node carries tags.
func decodeDenseTags(b []byte, strs []string, n int) ([]map[string]string, error) {
	out := make([]map[string]string, n)
	if len(b) == 0 {
		return out, nil
	}
	flat, err := decodePackedVarint(b)
	if err != nil {
		return nil, err
	}

	node := 0
	i := 0
	var cur map[string]string
	for i < len(flat) {
		if node >= n {
			return nil, fmt.Errorf("%w: dense keys_vals overruns node count", ErrMalformedFile)
		}
		if flat[i] == 0 {
			out[node] = cur
			cur = nil
			node++
			i++
			continue
		}
		if i+1 >= len(flat) {
			return nil, fmt.Errorf("%w: truncated dense keys_vals", ErrMalformedFile)
		}
		k, err := stringAt(strs, flat[i])
		if err != nil {
			return nil, err
		}
		v, err := stringAt(strs, flat[i+1])
		if err != nil {
			return nil, err
		}
		if cur == nil {
			cur = make(map[string]string)
		}
		cur[k] = v
		i += 2
	}
	// A final node's tag run may not be 0-terminated if keys_vals ends
	// exactly at the last node's last value pair only when n-node-1 was
	// already flushed; otherwise flush whatever was accumulated for the
	// last node actually touched.
	if node < n && cur != nil {
		out[node] = cur
	}

	return out, nil
}

func decodeWay(b []byte, strs []string) (*Way, error) {
	fields, err := parseMessage(b)
	if err != nil {
		return nil, err
	}
	id, ok := fieldVarint(fields, wayIDNum)
	if !ok {
		return nil, fmt.Errorf("%w: way missing id", ErrMalformedFile)
	}
	deltas, err := decodePackedZigZag(packedField(fields, wayRefsNum))
	if err != nil {
		return nil, err
	}
	nodes := make([]int64, len(deltas))
	var ref int64
	for i, d := range deltas {
		ref += d
		nodes[i] = ref
	}
	tags, err := decodeTagsFromBytes(packedField(fields, wayKeysNum), packedField(fields, wayValsNum), strs)
	if err != nil {
		return nil, err
	}

	return &Way{ID: int64(id), Nodes: nodes, Tags: tags}, nil
}

func decodeRelation(b []byte, strs []string) (*Relation, error) {
	fields, err := parseMessage(b)
	if err != nil {
		return nil, err
	}
	id, ok := fieldVarint(fields, relIDNum)
	if !ok {
		return nil, fmt.Errorf("%w: relation missing id", ErrMalformedFile)
	}
	memDeltas, err := decodePackedZigZag(packedField(fields, relMemIDsNum))
	if err != nil {
		return nil, err
	}
	types, err := decodePackedVarint(packedField(fields, relTypesNum))
	if err != nil {
		return nil, err
	}
	roleSIDs, err := decodePackedVarint(packedField(fields, relRolesSIDNum))
	if err != nil {
		return nil, err
	}
	if len(memDeltas) != len(types) || len(memDeltas) != len(roleSIDs) {
		return nil, fmt.Errorf("%w: relation member arrays length mismatch", ErrMalformedFile)
	}

	members := make([]Member, len(memDeltas))
	var ref int64
	for i := range memDeltas {
		ref += memDeltas[i]
		role, err := stringAt(strs, roleSIDs[i])
		if err != nil {
			return nil, err
		}
		members[i] = Member{Type: MemberType(types[i]), Ref: ref, Role: role}
	}

	tags, err := decodeTagsFromBytes(packedField(fields, relKeysNum), packedField(fields, relValsNum), strs)
	if err != nil {
		return nil, err
	}

	return &Relation{ID: int64(id), Members: members, Tags: tags}, nil
}
