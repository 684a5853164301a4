package osm

// MemberType classifies a Relation member's referent.
type MemberType int

const (
	MemberNode MemberType = iota
	MemberWay
	MemberRelation
)

// String renders t the way OSM XML/PBF spell it, for logging.
func (t MemberType) String() string {
	switch t {
	case MemberNode:
		return "node"
	case MemberWay:
		return "way"
	case MemberRelation:
		return "relation"
	default:
		return "unknown"
	}
}

// Node is an OSM node feature: an id, a position, and its tags.
type Node struct {
	ID   int64
	Lat  float64
	Lon  float64
	Tags map[string]string
}

// Way is an OSM way feature: an id, the ordered node ids it threads
// through, and its tags.
type Way struct {
	ID    int64
	Nodes []int64
	Tags  map[string]string
}

// Member is one element of a Relation's ordered member list.
type Member struct {
	Type MemberType
	Ref  int64
	Role string
}

// Relation is an OSM relation feature: an id, its ordered members, and its
// tags.
type Relation struct {
	ID      int64
	Members []Member
	Tags    map[string]string
}

// Feature is one record of the stream ReadFeatures produces: exactly one of
// Node, Way, Relation is non-nil.
type Feature struct {
	Node     *Node
	Way      *Way
	Relation *Relation
}

// Format selects how ReadFeatures interprets its input stream.
type Format int

const (
	// FormatAuto sniffs the stream's leading bytes to pick XML or PBF,
	// after transparently unwrapping gzip/bzip2 if present.
	FormatAuto Format = iota
	FormatXML
	FormatPBF
	// FormatGZIP and FormatBZIP2 force the corresponding outer-stream
	// decompression before auto-detecting the inner format.
	FormatGZIP
	FormatBZIP2
)
