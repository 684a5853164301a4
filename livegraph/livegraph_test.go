package livegraph_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/osmroute/distance"
	"github.com/katalvlaran/osmroute/livegraph"
	"github.com/katalvlaran/osmroute/osmprofile"
)

func TestTileForPosition_BoundingBoxContainsOrigin(t *testing.T) {
	pos := distance.Position{Lat: 50.0875, Lon: 14.4213}
	tile := livegraph.TileForPosition(pos, 15)
	assert.Equal(t, 15, tile.Z)
	south, west, north, east := tile.BoundingBox()
	assert.Less(t, south, pos.Lat)
	assert.Greater(t, north, pos.Lat)
	assert.Less(t, west, pos.Lon)
	assert.Greater(t, east, pos.Lon)
}

func TestTileForPosition_EquatorPrimeMeridianIsCentreQuadrant(t *testing.T) {
	tile := livegraph.TileForPosition(distance.Position{Lat: 0, Lon: 0}, 2)
	// At z=2 there are 4x4 tiles; (0,0) falls exactly on the boundary
	// between the two centre columns/rows.
	assert.Contains(t, []int{1, 2}, tile.X)
	assert.Contains(t, []int{1, 2}, tile.Y)
}

func TestTile_BoundingBoxContainsSourcePosition(t *testing.T) {
	pos := distance.Position{Lat: 50.0875, Lon: 14.4213}
	tile := livegraph.TileForPosition(pos, 12)
	south, west, north, east := tile.BoundingBox()
	assert.Less(t, south, pos.Lat)
	assert.Greater(t, north, pos.Lat)
	assert.Less(t, west, pos.Lon)
	assert.Greater(t, east, pos.Lon)
}

func TestTile_Ring8HasEightDistinctNeighbours(t *testing.T) {
	tile := livegraph.Tile{Z: 10, X: 500, Y: 500}
	ring := tile.Ring8()
	require.Len(t, ring, 8)
	seen := make(map[livegraph.Tile]struct{})
	for _, n := range ring {
		seen[n] = struct{}{}
		assert.NotEqual(t, tile, n)
	}
	assert.Len(t, seen, 8)
}

func TestTile_RingWrapsAntimeridian(t *testing.T) {
	tile := livegraph.Tile{Z: 4, X: 0, Y: 5}
	ring := tile.Ring8()
	for _, n := range ring {
		assert.GreaterOrEqual(t, n.X, 0)
		assert.Less(t, n.X, 1<<4)
	}
}

const tileXML = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="50.0" lon="14.0"/>
  <node id="2" lat="50.001" lon="14.0"/>
  <way id="10">
    <nd ref="1"/>
    <nd ref="2"/>
    <tag k="highway" v="residential"/>
  </way>
</osm>`

func TestLiveGraph_LoadTileAroundFetchesAndMerges(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(tileXML))
	}))
	defer srv.Close()

	dir := t.TempDir()
	lg := livegraph.New(dir, osmprofile.Car{}, livegraph.WithBaseURL(srv.URL), livegraph.WithZoom(15))

	pos := distance.Position{Lat: 50.0, Lon: 14.0}
	require.NoError(t, lg.LoadTileAround(pos))

	_, err := lg.GetNode(1)
	assert.NoError(t, err)
	_, ok := lg.EdgeCost(1, 2)
	assert.True(t, ok)

	// A second load of the same position must not trigger further
	// network requests (in-process loaded set short-circuits it).
	require.NoError(t, lg.LoadTileAround(pos))
	assert.Equal(t, 9, requests) // center + 8-neighbour ring, fetched exactly once each
}

func TestLiveGraph_SecondLiveGraphReusesDiskCache(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(tileXML))
	}))
	defer srv.Close()

	dir := t.TempDir()
	pos := distance.Position{Lat: 50.0, Lon: 14.0}

	lg1 := livegraph.New(dir, osmprofile.Car{}, livegraph.WithBaseURL(srv.URL))
	require.NoError(t, lg1.LoadTileAround(pos))
	first := requests

	lg2 := livegraph.New(dir, osmprofile.Car{}, livegraph.WithBaseURL(srv.URL))
	require.NoError(t, lg2.LoadTileAround(pos))

	assert.Equal(t, first, requests, "second LiveGraph should have served every tile from disk cache")
	_, err := lg2.GetNode(1)
	assert.NoError(t, err)
}

func TestLiveGraph_404IsTreatedAsEmptyTile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	dir := t.TempDir()
	lg := livegraph.New(dir, osmprofile.Car{}, livegraph.WithBaseURL(srv.URL))

	require.NoError(t, lg.LoadTileAround(distance.Position{Lat: 50.0, Lon: 14.0}))
	assert.Equal(t, 0, lg.NodeCount())
}

func TestLiveGraph_ExpiredCacheEntryIsRefetched(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(tileXML))
	}))
	defer srv.Close()

	dir := t.TempDir()
	pos := distance.Position{Lat: 50.0, Lon: 14.0}

	lg1 := livegraph.New(dir, osmprofile.Car{}, livegraph.WithBaseURL(srv.URL), livegraph.WithExpiry(time.Millisecond))
	require.NoError(t, lg1.LoadTileAround(pos))
	first := requests
	time.Sleep(5 * time.Millisecond)

	lg2 := livegraph.New(dir, osmprofile.Car{}, livegraph.WithBaseURL(srv.URL), livegraph.WithExpiry(time.Millisecond))
	require.NoError(t, lg2.LoadTileAround(pos))
	assert.Greater(t, requests, first, "expired cache entries should be refetched, not served stale")
}

func TestLiveGraph_DifferentProfilesGetDistinctCacheDirectories(t *testing.T) {
	dir := t.TempDir()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(tileXML))
	}))
	defer srv.Close()

	carGraph := livegraph.New(dir, osmprofile.Car{}, livegraph.WithBaseURL(srv.URL))
	require.NoError(t, carGraph.LoadTileAround(distance.Position{Lat: 50.0, Lon: 14.0}))

	fooGraph := livegraph.New(dir, osmprofile.Foot{}, livegraph.WithBaseURL(srv.URL))
	require.NoError(t, fooGraph.LoadTileAround(distance.Position{Lat: 50.0, Lon: 14.0}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
