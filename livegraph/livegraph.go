package livegraph

import (
	"bytes"
	"fmt"
	"reflect"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/katalvlaran/osmroute/distance"
	"github.com/katalvlaran/osmroute/graph"
	"github.com/katalvlaran/osmroute/logging"
	"github.com/katalvlaran/osmroute/osm"
	"github.com/katalvlaran/osmroute/osmgraph"
	"github.com/katalvlaran/osmroute/osmprofile"
)

// DefaultLockTimeout bounds how long a tile acquisition waits on another
// process's lock before giving up.
const DefaultLockTimeout = 30 * time.Second

// LiveGraph is an OSM graph that lazily fills itself in by downloading
// tiles around queried positions. It embeds *graph.Graph[int64], so it
// satisfies the same consumer surface
// (GetNode, EdgesFrom, IsTurnRestricted, NearestNode) that a fully
// pre-built graph does — astar.FindRoute accepts either interchangeably.
type LiveGraph struct {
	*graph.Graph[int64]

	profile     osmprofile.Profile
	zoom        int
	cache       *diskCache
	fetcher     *TileFetcher
	lockTimeout time.Duration
	logger      logging.Logger

	loaded map[Tile]struct{}
}

// Options configures a New LiveGraph.
type Options struct {
	Zoom        int
	Expiry      time.Duration
	BaseURL     string
	MaxRetries  int
	LockTimeout time.Duration
	Logger      logging.Logger
	BeforeFetch BeforeRequestFn
	HTTPClient  *fasthttp.Client
}

// Option mutates Options.
type Option func(*Options)

func WithZoom(z int) Option                   { return func(o *Options) { o.Zoom = z } }
func WithExpiry(d time.Duration) Option        { return func(o *Options) { o.Expiry = d } }
func WithBaseURL(url string) Option            { return func(o *Options) { o.BaseURL = url } }
func WithMaxRetries(n int) Option              { return func(o *Options) { o.MaxRetries = n } }
func WithLockTimeout(d time.Duration) Option   { return func(o *Options) { o.LockTimeout = d } }
func WithLogger(l logging.Logger) Option       { return func(o *Options) { o.Logger = l } }
func WithBeforeFetch(fn BeforeRequestFn) Option { return func(o *Options) { o.BeforeFetch = fn } }
func WithHTTPClient(c *fasthttp.Client) Option  { return func(o *Options) { o.HTTPClient = c } }

// New constructs a LiveGraph over baseDir, a directory the on-disk tile
// cache owns exclusively for this profile.
func New(baseDir string, profile osmprofile.Profile, opts ...Option) *LiveGraph {
	cfg := Options{
		Zoom:        DefaultZoom,
		Expiry:      DefaultExpiry,
		BaseURL:     DefaultBaseURL,
		MaxRetries:  DefaultMaxRetries,
		LockTimeout: DefaultLockTimeout,
		Logger:      logging.Nop,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	fetcherOpts := []FetcherOption{WithFetcherMaxRetries(cfg.MaxRetries)}
	if cfg.BeforeFetch != nil {
		fetcherOpts = append(fetcherOpts, WithBeforeRequest(cfg.BeforeFetch))
	}
	if cfg.HTTPClient != nil {
		fetcherOpts = append(fetcherOpts, WithHTTPClient(cfg.HTTPClient))
	}

	return &LiveGraph{
		Graph:       graph.New[int64](),
		profile:     profile,
		zoom:        cfg.Zoom,
		cache:       newDiskCache(baseDir, profileIdentity(profile), cfg.Expiry),
		fetcher:     NewTileFetcher(cfg.BaseURL, fetcherOpts...),
		lockTimeout: cfg.LockTimeout,
		logger:      cfg.Logger,
		loaded:      make(map[Tile]struct{}),
	}
}

// profileIdentity derives the content-addressed cache key component for a
// profile: its concrete Go type name, since distinct profiles are
// distinct Go types — this keeps each profile's tile downloads in their
// own cache subtree.
func profileIdentity(profile osmprofile.Profile) string {
	t := reflect.TypeOf(profile)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t.Name()
}

// LoadTileAround ensures the tile enclosing pos, and its 8-neighbour ring,
// are loaded into the graph — from the in-process set, then the disk
// cache, then a network fetch, in that order.
func (lg *LiveGraph) LoadTileAround(pos distance.Position) error {
	center := TileForPosition(pos, lg.zoom)
	tiles := append([]Tile{center}, center.Ring8()...)
	for _, t := range tiles {
		if err := lg.ensureTile(t); err != nil {
			return err
		}
	}

	return nil
}

// FindNearestNode ensures pos's tile ring is loaded, then delegates to the
// embedded graph's k-d tree lookup.
func (lg *LiveGraph) FindNearestNode(pos distance.Position) (graph.Node[int64], error) {
	if err := lg.LoadTileAround(pos); err != nil {
		return graph.Node[int64]{}, err
	}

	return lg.NearestNode(pos)
}

func (lg *LiveGraph) ensureTile(t Tile) error {
	if _, ok := lg.loaded[t]; ok {
		return nil
	}

	body, err := lg.acquire(t)
	if err != nil {
		return err
	}
	lg.loaded[t] = struct{}{}
	if body == nil {
		// 404: an empty tile. Nothing to merge, but it is now "loaded" so
		// we never refetch it this process lifetime.
		return nil
	}

	reader, err := osm.ReadFeatures(bytes.NewReader(body), osm.FormatXML)
	if err != nil {
		return fmt.Errorf("%w: tile %s: %v", ErrCacheIO, t, err)
	}
	if err := osmgraph.MergeInto(lg.Graph, reader, lg.profile, osmgraph.WithLogger(lg.logger)); err != nil {
		return fmt.Errorf("tile %s: %w", t, err)
	}

	return nil
}

// acquire returns t's body, consulting the disk cache before falling back
// to a network fetch guarded by the tile's advisory lock.
func (lg *LiveGraph) acquire(t Tile) ([]byte, error) {
	if lg.cache.fresh(t) {
		body, err := lg.cache.load(t)
		if err == nil {
			return body, nil
		}
		// Fall through to refetch if the cached body went missing despite
		// a fresh sidecar (e.g. manual cache tampering).
	}

	unlock, err := lg.cache.lock(t, lg.lockTimeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Re-check freshness: another process may have refreshed this tile
	// while we waited for the lock.
	if lg.cache.fresh(t) {
		if body, err := lg.cache.load(t); err == nil {
			return body, nil
		}
	}

	body, etag, err := lg.fetcher.Fetch(t)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}
	if err := lg.cache.store(t, body, etag); err != nil {
		lg.logger.Warn("failed to persist tile cache entry", "tile", t.String(), "err", err)
	}

	return body, nil
}
