package astar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/osmroute/astar"
	"github.com/katalvlaran/osmroute/distance"
	"github.com/katalvlaran/osmroute/graph"
)

// buildLine builds A-B-C-D, each hop cost 1, positions spaced along the
// equator so the default haversine heuristic is admissible and monotonic.
func buildLine(t *testing.T) *graph.Graph[string] {
	t.Helper()
	g := graph.New[string]()
	for i, id := range []string{"A", "B", "C", "D"} {
		g.AddNode(graph.Node[string]{ID: id, Pos: distance.Position{Lat: 0, Lon: float64(i)}})
	}
	require.NoError(t, g.AddEdge("A", "B", 1))
	require.NoError(t, g.AddEdge("B", "C", 1))
	require.NoError(t, g.AddEdge("C", "D", 1))

	return g
}

// S1: trivial path exists and is returned in order.
func TestFindRoute_TrivialPath(t *testing.T) {
	g := buildLine(t)
	path, err := astar.FindRoute[string](g, "A", "D")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, path)
}

func TestFindRoute_StartEqualsEnd(t *testing.T) {
	g := buildLine(t)
	path, err := astar.FindRoute[string](g, "A", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, path)
}

// S2: no path exists between disconnected components.
func TestFindRoute_NoPath(t *testing.T) {
	g := graph.New[string]()
	g.AddNode(graph.Node[string]{ID: "A", Pos: distance.Position{Lat: 0, Lon: 0}})
	g.AddNode(graph.Node[string]{ID: "Z", Pos: distance.Position{Lat: 10, Lon: 10}})

	path, err := astar.FindRoute[string](g, "A", "Z")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestFindRoute_UnknownEndpoints(t *testing.T) {
	g := buildLine(t)
	_, err := astar.FindRoute[string](g, "A", "nowhere")
	require.ErrorIs(t, err, astar.ErrNotFound)

	_, err = astar.FindRoute[string](g, "nowhere", "A")
	require.ErrorIs(t, err, astar.ErrNotFound)
}

// S3: a step limit too small for the graph aborts the search.
func TestFindRoute_StepLimitExceeded(t *testing.T) {
	g := buildLine(t)
	_, err := astar.FindRoute[string](g, "A", "D", astar.WithStepLimit[string](1))
	require.ErrorIs(t, err, astar.ErrStepLimitExceeded)
}

// S4: a prohibited turn forces a detour; the mandated-exact-opposite case
// is also covered (a mandate narrows the next hop to a single node).
func TestFindRoute_ProhibitedTurnForcesDetour(t *testing.T) {
	g := graph.New[string]()
	for id, pos := range map[string]distance.Position{
		"A": {Lat: 0, Lon: 0},
		"B": {Lat: 0, Lon: 1},
		"C": {Lat: 0, Lon: 2},
		"D": {Lat: 1, Lon: 1},
	} {
		g.AddNode(graph.Node[string]{ID: id, Pos: pos})
	}
	require.NoError(t, g.AddEdge("A", "B", 1))
	require.NoError(t, g.AddEdge("B", "C", 1))
	require.NoError(t, g.AddEdge("B", "D", 1))
	require.NoError(t, g.AddEdge("D", "C", 1))
	// Prohibit proceeding to C after arriving via A->B: forces A->B->D->C.
	require.NoError(t, g.Restrictions().Add(graph.RestrictionProhibit, []string{"A", "B"}, "C"))

	path, err := astar.FindRoute[string](g, "A", "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D", "C"}, path)
}

func TestFindRoute_MandatedTurnNarrowsOptions(t *testing.T) {
	g := graph.New[string]()
	for id, pos := range map[string]distance.Position{
		"A": {Lat: 0, Lon: 0},
		"B": {Lat: 0, Lon: 1},
		"C": {Lat: 0, Lon: 2},
		"D": {Lat: 1, Lon: 1},
	} {
		g.AddNode(graph.Node[string]{ID: id, Pos: pos})
	}
	require.NoError(t, g.AddEdge("A", "B", 1))
	require.NoError(t, g.AddEdge("B", "C", 1))
	require.NoError(t, g.AddEdge("B", "D", 1))
	// Mandate that arriving via A->B, the only legal next hop is D.
	require.NoError(t, g.Restrictions().Add(graph.RestrictionMandate, []string{"A", "B"}, "D"))

	// C is no longer reachable: the mandate forces A->B->D, closing off B->C.
	blocked, err := astar.FindRoute[string](g, "A", "C")
	require.NoError(t, err)
	assert.Empty(t, blocked)

	path, err := astar.FindRoute[string](g, "A", "D")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D"}, path)
}

// S5: forbidding immediate turn-around still allows revisiting the prior
// node via a longer detour.
func TestFindRouteWithoutTurnAround_AllowsDetourNotDirectBacktrack(t *testing.T) {
	g := graph.New[string]()
	for id, pos := range map[string]distance.Position{
		"A": {Lat: 0, Lon: 0},
		"B": {Lat: 0, Lon: 1},
		"C": {Lat: 0, Lon: 2},
	} {
		g.AddNode(graph.Node[string]{ID: id, Pos: pos})
	}
	require.NoError(t, g.AddEdge("A", "B", 1))
	require.NoError(t, g.AddEdge("B", "A", 1))
	require.NoError(t, g.AddEdge("B", "C", 1))

	// Direct A->B->A->... is forbidden, but A->B->C is untouched.
	path, err := astar.FindRouteWithoutTurnAround[string](g, "A", "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, path)
}

func TestFindRouteWithoutTurnAround_StartHasNoArrivalEdge(t *testing.T) {
	g := graph.New[string]()
	g.AddNode(graph.Node[string]{ID: "A", Pos: distance.Position{Lat: 0, Lon: 0}})
	g.AddNode(graph.Node[string]{ID: "B", Pos: distance.Position{Lat: 0, Lon: 1}})
	require.NoError(t, g.AddEdge("A", "B", 1))
	require.NoError(t, g.AddEdge("B", "A", 1))

	// B is a dead end, but a search that starts at B has not arrived along
	// any edge, so leaving B for A is not a turn-around.
	path, err := astar.FindRouteWithoutTurnAround[string](g, "A", "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, path)

	path, err = astar.FindRouteWithoutTurnAround[string](g, "B", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, path)
}

func TestFindRoute_CustomHeuristicAndWithStepLimit(t *testing.T) {
	g := buildLine(t)
	zero := func(u, end string) float64 { return 0 }
	path, err := astar.FindRoute[string](g, "A", "D",
		astar.WithHeuristic[string](zero),
		astar.WithStepLimit[string](100))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, path)
}
