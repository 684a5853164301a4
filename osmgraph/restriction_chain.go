package osmgraph

import (
	"fmt"

	"github.com/katalvlaran/osmroute/osm"
)

// resolveChain reconstructs the ordered node sequence a turn-restriction
// relation spans — from its `from` way, through one or more `via`
// node/way members, to its `to` way. wayNodes supplies every way's node
// list seen in the stream, regardless of whether the builder accepted
// that way for routing.
func resolveChain(rel *osm.Relation, wayNodes map[int64][]int64) ([]int64, error) {
	var fromRef, toRef int64
	var haveFrom, haveTo bool
	var viaSegments [][]int64

	for _, m := range rel.Members {
		switch m.Role {
		case "from":
			if m.Type != osm.MemberWay {
				return nil, fmt.Errorf("%w: relation %d: from member is not a way", ErrMalformedRestriction, rel.ID)
			}
			fromRef = m.Ref
			haveFrom = true
		case "to":
			if m.Type != osm.MemberWay {
				return nil, fmt.Errorf("%w: relation %d: to member is not a way", ErrMalformedRestriction, rel.ID)
			}
			toRef = m.Ref
			haveTo = true
		case "via":
			switch m.Type {
			case osm.MemberNode:
				viaSegments = append(viaSegments, []int64{m.Ref})
			case osm.MemberWay:
				nodes, ok := wayNodes[m.Ref]
				if !ok || len(nodes) < 2 {
					return nil, fmt.Errorf("%w: relation %d: via way %d unknown", ErrMalformedRestriction, rel.ID, m.Ref)
				}
				viaSegments = append(viaSegments, nodes)
			default:
				return nil, fmt.Errorf("%w: relation %d: via member has unsupported type", ErrMalformedRestriction, rel.ID)
			}
		}
	}

	if !haveFrom || !haveTo || len(viaSegments) == 0 {
		return nil, fmt.Errorf("%w: relation %d: missing from/via/to member", ErrMalformedRestriction, rel.ID)
	}

	fromNodes, ok := wayNodes[fromRef]
	if !ok || len(fromNodes) < 2 {
		return nil, fmt.Errorf("%w: relation %d: from way %d unknown", ErrMalformedRestriction, rel.ID, fromRef)
	}
	toNodes, ok := wayNodes[toRef]
	if !ok || len(toNodes) < 2 {
		return nil, fmt.Errorf("%w: relation %d: to way %d unknown", ErrMalformedRestriction, rel.ID, toRef)
	}

	segments := append([][]int64{fromNodes}, viaSegments...)
	segments = append(segments, toNodes)

	chain, ok := buildChain(segments)
	if !ok || len(chain) < 3 {
		return nil, fmt.Errorf("%w: relation %d: disconnected from/via/to chain", ErrMalformedRestriction, rel.ID)
	}

	return chain, nil
}

// buildChain glues an ordered list of node-id segments end-to-end,
// reorienting each as needed so consecutive segments share an endpoint.
// Only the very first segment may itself be reversed (to correctly
// orient the `from` way relative to whichever end touches the first via
// segment) — every later glue is resolved by reorienting the newly
// arriving segment alone, since the chain's running orientation is by
// then already fixed.
func buildChain(segments [][]int64) ([]int64, bool) {
	if len(segments) == 0 {
		return nil, false
	}
	chain := append([]int64(nil), segments[0]...)
	for i := 1; i < len(segments); i++ {
		glued, ok := glueSegment(chain, segments[i], i == 1)
		if !ok {
			return nil, false
		}
		chain = glued
	}

	return chain, true
}

func glueSegment(chain, next []int64, allowChainReverse bool) ([]int64, bool) {
	chainTail := chain[len(chain)-1]
	nextHead, nextTail := next[0], next[len(next)-1]

	switch {
	case chainTail == nextHead:
		return append(append([]int64(nil), chain...), next[1:]...), true
	case chainTail == nextTail:
		rev := reverseInts(next)

		return append(append([]int64(nil), chain...), rev[1:]...), true
	}

	if allowChainReverse {
		chainHead := chain[0]
		if chainHead == nextHead || chainHead == nextTail {
			return glueSegment(reverseInts(chain), next, false)
		}
	}

	return nil, false
}

func reverseInts(s []int64) []int64 {
	out := make([]int64, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}

	return out
}
