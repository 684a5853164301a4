package livegraph

import (
	"fmt"
	"math"

	"github.com/katalvlaran/osmroute/distance"
)

// DefaultZoom is the slippy-tile zoom level used when a caller does not
// pick one explicitly.
const DefaultZoom = 15

// Tile identifies a Web Mercator slippy tile by zoom and integer (x, y).
type Tile struct {
	Z, X, Y int
}

// String renders t as "z/x/y", the conventional slippy-tile path shape.
func (t Tile) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// TileForPosition returns the tile enclosing pos at zoom z, using the
// standard Web Mercator slippy-tile projection.
func TileForPosition(pos distance.Position, z int) Tile {
	n := math.Exp2(float64(z))
	latRad := pos.Lat * math.Pi / 180

	x := int(math.Floor((pos.Lon + 180) / 360 * n))
	y := int(math.Floor((1 - math.Asinh(math.Tan(latRad))/math.Pi) / 2 * n))

	return clampTile(Tile{Z: z, X: x, Y: y}, z)
}

// clampTile wraps X around the antimeridian and clamps Y to the valid
// [0, 2^z) range, so a position exactly on a tile boundary never yields an
// out-of-range tile.
func clampTile(t Tile, z int) Tile {
	n := 1 << uint(z)
	t.X = ((t.X % n) + n) % n
	if t.Y < 0 {
		t.Y = 0
	}
	if t.Y >= n {
		t.Y = n - 1
	}

	return t
}

// BoundingBox returns t's geographic extent as (south, west, north, east)
// in degrees, per the standard Web Mercator tile convention.
func (t Tile) BoundingBox() (south, west, north, east float64) {
	n := math.Exp2(float64(t.Z))
	west = float64(t.X)/n*360 - 180
	east = float64(t.X+1)/n*360 - 180
	north = tileLat(t.Y, n)
	south = tileLat(t.Y+1, n)

	return south, west, north, east
}

func tileLat(y int, n float64) float64 {
	yN := math.Pi * (1 - 2*float64(y)/n)

	return 180 / math.Pi * math.Atan(math.Sinh(yN))
}

// Ring8 returns t's 8 orthogonal and diagonal neighbours (not including t
// itself), each wrapped/clamped the same way TileForPosition is.
func (t Tile) Ring8() []Tile {
	out := make([]Tile, 0, 8)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			out = append(out, clampTile(Tile{Z: t.Z, X: t.X + dx, Y: t.Y + dy}, t.Z))
		}
	}

	return out
}
