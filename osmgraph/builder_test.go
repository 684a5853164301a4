package osmgraph_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/osmroute/distance"
	"github.com/katalvlaran/osmroute/graph"
	"github.com/katalvlaran/osmroute/osm"
	"github.com/katalvlaran/osmroute/osmgraph"
	"github.com/katalvlaran/osmroute/osmprofile"
)

// sliceSource replays a fixed slice of features, implementing the same
// Next() (osm.Feature, error) protocol as *osm.Reader.
type sliceSource struct {
	feats []osm.Feature
	i     int
}

func (s *sliceSource) Next() (osm.Feature, error) {
	if s.i >= len(s.feats) {
		return osm.Feature{}, io.EOF
	}
	f := s.feats[s.i]
	s.i++

	return f, nil
}

func node(id int64, lat, lon float64) osm.Feature {
	return osm.Feature{Node: &osm.Node{ID: id, Lat: lat, Lon: lon}}
}

func way(id int64, tags map[string]string, nodes ...int64) osm.Feature {
	return osm.Feature{Way: &osm.Way{ID: id, Nodes: nodes, Tags: tags}}
}

// S6: a two-node OSM way with highway=residential yields two directed
// edges under CarProfile; the same way with oneway=yes yields only the
// forward edge.
func TestBuild_TwoWayResidentialYieldsBothEdges(t *testing.T) {
	src := &sliceSource{feats: []osm.Feature{
		node(1, 50.0, 14.0),
		node(2, 50.001, 14.0),
		way(10, map[string]string{"highway": "residential"}, 1, 2),
	}}
	g, err := osmgraph.Build(src, osmprofile.Car{})
	require.NoError(t, err)

	_, fwd := g.EdgeCost(1, 2)
	_, bwd := g.EdgeCost(2, 1)
	assert.True(t, fwd)
	assert.True(t, bwd)
}

func TestBuild_OnewayYieldsOnlyForwardEdge(t *testing.T) {
	src := &sliceSource{feats: []osm.Feature{
		node(1, 50.0, 14.0),
		node(2, 50.001, 14.0),
		way(10, map[string]string{"highway": "residential", "oneway": "yes"}, 1, 2),
	}}
	g, err := osmgraph.Build(src, osmprofile.Car{})
	require.NoError(t, err)

	_, fwd := g.EdgeCost(1, 2)
	_, bwd := g.EdgeCost(2, 1)
	assert.True(t, fwd)
	assert.False(t, bwd)
}

func TestBuild_EdgeCostAtLeastHaversine(t *testing.T) {
	src := &sliceSource{feats: []osm.Feature{
		node(1, 50.0, 14.0),
		node(2, 50.01, 14.0),
		way(10, map[string]string{"highway": "residential"}, 1, 2),
	}}
	g, err := osmgraph.Build(src, osmprofile.Car{})
	require.NoError(t, err)

	n1, _ := g.GetNode(1)
	n2, _ := g.GetNode(2)
	cost, ok := g.EdgeCost(1, 2)
	require.True(t, ok)

	hav := distance.Haversine(n1.Pos, n2.Pos)
	assert.GreaterOrEqual(t, cost, hav)
}

func TestBuild_InaccessibleWayRejected(t *testing.T) {
	src := &sliceSource{feats: []osm.Feature{
		node(1, 50.0, 14.0),
		node(2, 50.001, 14.0),
		way(10, map[string]string{"highway": "residential", "access": "no"}, 1, 2),
	}}
	g, err := osmgraph.Build(src, osmprofile.Car{})
	require.NoError(t, err)

	_, ok := g.EdgeCost(1, 2)
	assert.False(t, ok)
}

func TestBuild_WayReferencingMissingNodeDropsSegment(t *testing.T) {
	src := &sliceSource{feats: []osm.Feature{
		node(1, 50.0, 14.0),
		// node 2 never appears
		node(3, 50.002, 14.0),
		way(10, map[string]string{"highway": "residential"}, 1, 2, 3),
	}}
	g, err := osmgraph.Build(src, osmprofile.Car{})
	require.NoError(t, err)

	assert.Equal(t, 1, g.NodeCount())
}

// S4-equivalent: a resolved "no_left_turn" restriction narrows A*'s
// options (covered end-to-end here via the graph's restriction table).
func TestBuild_ResolvesSimpleViaNodeRestriction(t *testing.T) {
	src := &sliceSource{feats: []osm.Feature{
		node(1, 50.0, 14.0),
		node(2, 50.001, 14.0),
		node(3, 50.001, 14.001),
		way(10, map[string]string{"highway": "residential"}, 1, 2),
		way(11, map[string]string{"highway": "residential"}, 2, 3),
		osm.Feature{Relation: &osm.Relation{
			ID: 100,
			Members: []osm.Member{
				{Type: osm.MemberWay, Ref: 10, Role: "from"},
				{Type: osm.MemberNode, Ref: 2, Role: "via"},
				{Type: osm.MemberWay, Ref: 11, Role: "to"},
			},
			Tags: map[string]string{"type": "restriction", "restriction": "no_left_turn"},
		}},
	}}
	g, err := osmgraph.Build(src, osmprofile.Car{})
	require.NoError(t, err)

	d := g.IsTurnRestricted([]int64{1, 2})
	assert.Equal(t, graph.RestrictionProhibit, d.Kind)
	_, forbidden := d.Targets[int64(3)]
	assert.True(t, forbidden)
}

func TestBuild_SkipsMalformedRestrictionWithoutFailing(t *testing.T) {
	src := &sliceSource{feats: []osm.Feature{
		node(1, 50.0, 14.0),
		node(2, 50.001, 14.0),
		way(10, map[string]string{"highway": "residential"}, 1, 2),
		osm.Feature{Relation: &osm.Relation{
			ID: 101,
			Members: []osm.Member{
				{Type: osm.MemberWay, Ref: 10, Role: "from"},
				// no via, no to: unreconstructable.
			},
			Tags: map[string]string{"type": "restriction", "restriction": "no_left_turn"},
		}},
	}}
	g, err := osmgraph.Build(src, osmprofile.Car{})
	require.NoError(t, err)
	assert.Equal(t, 0, g.Restrictions().LongestChain())
}
