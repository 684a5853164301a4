package distance

import (
	"math"

	"github.com/umahmood/haversine"
)

// earthMeanRadiusMetres is the canonical Earth mean radius used for
// great-circle distance. umahmood/haversine hard-codes its own Earth radius
// internally and returns kilometres; we re-derive metres from its km figure
// scaled by this radius rather than trusting its return value directly, so
// that callers get a consistent, documented radius regardless of the
// library's internal constant.
const earthMeanRadiusMetres = 6371008.8

// Position is a (latitude, longitude) pair in degrees. Both components must
// be finite; callers are responsible for validating input ranges (OSM
// coordinates are not range-checked here, matching the reader's contract of
// surfacing malformed numeric attributes at parse time, not at use time).
type Position struct {
	Lat float64
	Lon float64
}

// Haversine returns the great-circle distance between a and b in metres, on
// a sphere of Earth mean radius 6 371 008.8 m. It is admissible as an A*
// heuristic (never overestimates true edge cost, since edge cost is
// haversine×penalty and penalty≥1) and handles antipodal points without
// producing NaN.
func Haversine(a, b Position) float64 {
	// umahmood/haversine works in degrees and returns (miles, kilometres);
	// we only need kilometres, then rescale to our documented radius.
	_, km := haversine.Distance(
		haversine.Coord{Lat: a.Lat, Lon: a.Lon},
		haversine.Coord{Lat: b.Lat, Lon: b.Lon},
	)

	return km * 1000 * (earthMeanRadiusMetres / haversineLibraryRadiusMetres)
}

// haversineLibraryRadiusMetres is the Earth radius umahmood/haversine uses
// internally (6372.8 km, per its published source). Kept as a named
// constant rather than inlined so the rescale in Haversine is auditable.
const haversineLibraryRadiusMetres = 6372800.0

// Euclidean returns √((Δlat)²+(Δlon)²) in degrees. It is not a physical
// distance (latitude and longitude degrees are not commensurable metres)
// and must only be used for relative ordering — e.g. k-d tree pruning —
// never as an edge cost or admissible heuristic.
func Euclidean(a, b Position) float64 {
	dLat := a.Lat - b.Lat
	dLon := a.Lon - b.Lon

	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// Taxicab returns |Δlat|+|Δlon| in degrees. Same caveat as Euclidean: a
// degree-space ordering metric, not a physical distance.
func Taxicab(a, b Position) float64 {
	return math.Abs(a.Lat-b.Lat) + math.Abs(a.Lon-b.Lon)
}
