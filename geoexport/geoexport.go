package geoexport

import (
	"fmt"

	"github.com/paulmach/go.geojson"

	"github.com/katalvlaran/osmroute/graph"
)

// nodeGetter is the narrow read the exporter needs from a graph — enough
// to resolve every route node's position without depending on the full
// *graph.Graph[K] type, so this package composes with any graph shape
// that exposes GetNode.
type nodeGetter[K comparable] interface {
	GetNode(id K) (graph.Node[K], error)
}

// RouteToGeoJSON renders route (an ordered node-id sequence, as returned
// by astar.FindRoute) as a GeoJSON FeatureCollection: one LineString
// feature threading every node in order, plus one Point feature per node
// carrying its external id as a property, for handoff to any
// GeoJSON-consuming map renderer.
func RouteToGeoJSON[K comparable](g nodeGetter[K], route []K) (*geojson.FeatureCollection, error) {
	if len(route) == 0 {
		return nil, ErrEmptyRoute
	}

	fc := geojson.NewFeatureCollection()

	line := make([][]float64, 0, len(route))
	for _, id := range route {
		n, err := g.GetNode(id)
		if err != nil {
			return nil, fmt.Errorf("geoexport: %w", err)
		}

		coord := []float64{n.Pos.Lon, n.Pos.Lat}
		line = append(line, coord)

		pt := geojson.NewFeature(geojson.NewPointGeometry(coord))
		pt.Properties = map[string]interface{}{"id": fmt.Sprintf("%v", id)}
		fc.AddFeature(pt)
	}

	if len(line) > 1 {
		fc.AddFeature(geojson.NewFeature(geojson.NewLineStringGeometry(line)))
	}

	return fc, nil
}
