// Package geoexport renders a found route as GeoJSON, for handoff to any
// GeoJSON-consuming map renderer, using github.com/paulmach/go.geojson.
package geoexport
