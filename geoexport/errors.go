package geoexport

import "errors"

// ErrEmptyRoute indicates RouteToGeoJSON was asked to render a zero-length
// route. A single-node route is valid (and renders as a lone Point with
// no LineString); an empty one is not.
var ErrEmptyRoute = errors.New("geoexport: empty route")
