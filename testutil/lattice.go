package testutil

import (
	"github.com/katalvlaran/osmroute/distance"
	"github.com/katalvlaran/osmroute/graph"
)

// Connectivity selects which neighbour offsets NewLattice connects:
// orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

var offsets4 = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
var offsets8 = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}

// LatticeOptions configures NewLattice.
type LatticeOptions struct {
	Rows, Cols int
	// Origin is the position of cell (0, 0).
	Origin distance.Position
	// Delta is the spacing between adjacent rows/columns, in degrees.
	Delta float64
	// Conn selects 4- or 8-directional connectivity. Zero value is Conn4.
	Conn Connectivity
	// Bidirectional adds both directions of every edge. Default true; set
	// false to build a one-way (row-major) lattice for direction tests.
	Bidirectional bool
}

// DefaultLatticeOptions returns a 3x3 grid spaced 0.001 degrees apart
// starting at (0, 0), 4-connected, bidirectional — enough for most
// small end-to-end tests.
func DefaultLatticeOptions() LatticeOptions {
	return LatticeOptions{
		Rows: 3, Cols: 3,
		Origin:        distance.Position{Lat: 0, Lon: 0},
		Delta:         0.001,
		Conn:          Conn4,
		Bidirectional: true,
	}
}

// ID returns the node id NewLattice assigns to cell (row, col) for a
// lattice with the given column count: a row-major index.
func ID(row, col, cols int) int64 {
	return int64(row*cols + col)
}

// Coordinate inverts ID for a lattice with the given column count.
func Coordinate(id int64, cols int) (row, col int) {
	return int(id) / cols, int(id) % cols
}

// forwardOnly keeps one offset from each (d, -d) antipodal pair: those
// pointing toward increasing row, or increasing column on a zero-row
// offset.
func forwardOnly(offsets [][2]int) [][2]int {
	out := make([][2]int, 0, len(offsets)/2)
	for _, d := range offsets {
		if d[0] > 0 || (d[0] == 0 && d[1] > 0) {
			out = append(out, d)
		}
	}

	return out
}

// NewLattice builds a *graph.Graph[int64] of Rows x Cols nodes spaced
// Delta degrees apart starting at Origin, connected per Conn with
// haversine-cost edges. Node ids follow ID(row, col, opts.Cols).
func NewLattice(opts LatticeOptions) *graph.Graph[int64] {
	g := graph.New[int64]()

	for row := 0; row < opts.Rows; row++ {
		for col := 0; col < opts.Cols; col++ {
			pos := distance.Position{
				Lat: opts.Origin.Lat + float64(row)*opts.Delta,
				Lon: opts.Origin.Lon + float64(col)*opts.Delta,
			}
			g.AddNode(graph.Node[int64]{ID: ID(row, col, opts.Cols), Pos: pos})
		}
	}

	offsets := offsets4
	if opts.Conn == Conn8 {
		offsets = offsets8
	}
	if !opts.Bidirectional {
		// Keep only one offset of each antipodal pair, so every edge is
		// added exactly once, in the row/column-increasing direction.
		offsets = forwardOnly(offsets)
	}

	for row := 0; row < opts.Rows; row++ {
		for col := 0; col < opts.Cols; col++ {
			from := ID(row, col, opts.Cols)
			fromNode, _ := g.GetNode(from)
			for _, d := range offsets {
				nr, nc := row+d[0], col+d[1]
				if nr < 0 || nr >= opts.Rows || nc < 0 || nc >= opts.Cols {
					continue
				}
				to := ID(nr, nc, opts.Cols)
				toNode, _ := g.GetNode(to)
				cost := distance.Haversine(fromNode.Pos, toNode.Pos)
				_ = g.AddEdge(from, to, cost)
			}
		}
	}

	return g
}
