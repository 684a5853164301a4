package geoexport_test

import (
	"testing"

	"github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/osmroute/distance"
	"github.com/katalvlaran/osmroute/geoexport"
	"github.com/katalvlaran/osmroute/graph"
)

func buildTriangle(t *testing.T) *graph.Graph[string] {
	t.Helper()
	g := graph.New[string]()
	g.AddNode(graph.Node[string]{ID: "A", Pos: distance.Position{Lat: 0, Lon: 0}})
	g.AddNode(graph.Node[string]{ID: "B", Pos: distance.Position{Lat: 0, Lon: 1}})
	g.AddNode(graph.Node[string]{ID: "C", Pos: distance.Position{Lat: 0, Lon: 2}})

	return g
}

func TestRouteToGeoJSON_MultiNodeRoute(t *testing.T) {
	g := buildTriangle(t)
	fc, err := geoexport.RouteToGeoJSON[string](g, []string{"A", "B", "C"})
	require.NoError(t, err)

	// 3 Point features plus 1 LineString feature.
	assert.Len(t, fc.Features, 4)

	line := fc.Features[3]
	assert.Equal(t, geojson.GeometryLineString, line.Geometry.Type)
	assert.Equal(t, [][]float64{{0, 0}, {1, 0}, {2, 0}}, line.Geometry.LineString)

	pt := fc.Features[0]
	assert.Equal(t, geojson.GeometryPoint, pt.Geometry.Type)
	assert.Equal(t, "A", pt.Properties["id"])
}

func TestRouteToGeoJSON_SingleNodeRoute(t *testing.T) {
	g := buildTriangle(t)
	fc, err := geoexport.RouteToGeoJSON[string](g, []string{"A"})
	require.NoError(t, err)
	assert.Len(t, fc.Features, 1)
}

func TestRouteToGeoJSON_EmptyRoute(t *testing.T) {
	g := buildTriangle(t)
	_, err := geoexport.RouteToGeoJSON[string](g, nil)
	assert.ErrorIs(t, err, geoexport.ErrEmptyRoute)
}

func TestRouteToGeoJSON_UnknownNode(t *testing.T) {
	g := buildTriangle(t)
	_, err := geoexport.RouteToGeoJSON[string](g, []string{"A", "Z"})
	assert.Error(t, err)
}
