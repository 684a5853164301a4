package kdtree_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/osmroute/distance"
	"github.com/katalvlaran/osmroute/kdtree"
)

func TestTree_Nearest_EmptyFails(t *testing.T) {
	tr := kdtree.New[string](nil)
	_, err := tr.Nearest(distance.Position{Lat: 0, Lon: 0})
	require.ErrorIs(t, err, kdtree.ErrNotFound)
}

func TestTree_Nearest_Single(t *testing.T) {
	items := []kdtree.Item[string]{{Pos: distance.Position{Lat: 1, Lon: 1}, Value: "only"}}
	tr := kdtree.New(items)
	got, err := tr.Nearest(distance.Position{Lat: 50, Lon: 50})
	require.NoError(t, err)
	assert.Equal(t, "only", got)
}

// linearNearest mirrors kdtree.Nearest by brute force: Nearest must agree
// with a linear scan over every item.
func linearNearest(items []kdtree.Item[int], query distance.Position) int {
	best := 0
	bestDist := distance.Haversine(query, items[0].Pos)
	for i, it := range items[1:] {
		d := distance.Haversine(query, it.Pos)
		if d < bestDist {
			bestDist = d
			best = i + 1
		}
	}

	return items[best].Value
}

func TestTree_Nearest_MatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	items := make([]kdtree.Item[int], 0, 500)
	for i := 0; i < 500; i++ {
		items = append(items, kdtree.Item[int]{
			Pos: distance.Position{
				Lat: rng.Float64()*180 - 90,
				Lon: rng.Float64()*360 - 180,
			},
			Value: i,
		})
	}
	tr := kdtree.New(items)

	for q := 0; q < 200; q++ {
		query := distance.Position{Lat: rng.Float64()*180 - 90, Lon: rng.Float64()*360 - 180}
		want := linearNearest(items, query)
		got, err := tr.Nearest(query)
		require.NoError(t, err)

		wantPos := items[want].Pos
		gotPos := items[got].Pos
		wantDist := distance.Haversine(query, wantPos)
		gotDist := distance.Haversine(query, gotPos)
		assert.InDelta(t, wantDist, gotDist, 1e-6, "kdtree nearest distance must match linear scan")
	}
}

func TestTree_Len(t *testing.T) {
	items := []kdtree.Item[int]{
		{Pos: distance.Position{Lat: 0, Lon: 0}, Value: 1},
		{Pos: distance.Position{Lat: 1, Lon: 1}, Value: 2},
	}
	tr := kdtree.New(items)
	assert.Equal(t, 2, tr.Len())
}
