package osmgraph

import (
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/osmroute/distance"
	"github.com/katalvlaran/osmroute/graph"
	"github.com/katalvlaran/osmroute/logging"
	"github.com/katalvlaran/osmroute/osm"
	"github.com/katalvlaran/osmroute/osmprofile"
)

// featureSource is the narrow protocol Build consumes — satisfied by
// *osm.Reader, and by anything else producing the same lazy sequence
// (e.g. a test fixture).
type featureSource interface {
	Next() (osm.Feature, error)
}

// BuildOptions configures a single Build call.
type BuildOptions struct {
	Logger logging.Logger
}

// Option mutates BuildOptions.
type Option func(*BuildOptions)

// WithLogger overrides the default no-op warning logger.
func WithLogger(l logging.Logger) Option {
	return func(o *BuildOptions) { o.Logger = l }
}

type acceptedWay struct {
	nodes     []int64
	direction osmprofile.Direction
	penalty   float64
}

// Build reads every feature src produces exactly once and returns a graph
// whose edges and turn-restriction table reflect profile.
func Build(src featureSource, profile osmprofile.Profile, opts ...Option) (*graph.Graph[int64], error) {
	g := graph.New[int64]()
	if err := MergeInto(g, src, profile, opts...); err != nil {
		return nil, err
	}

	return g, nil
}

// MergeInto runs the same three-pass construction Build does, but adds
// its nodes, edges, and turn restrictions into the caller-supplied graph
// instead of a fresh one — the live graph (package livegraph) uses this to
// fold a newly-downloaded tile's features into its persistent graph.
func MergeInto(g *graph.Graph[int64], src featureSource, profile osmprofile.Profile, opts ...Option) error {
	cfg := BuildOptions{Logger: logging.Nop}
	for _, opt := range opts {
		opt(&cfg)
	}

	nodePos := make(map[int64]distance.Position)
	wayNodes := make(map[int64][]int64)
	var accepted []acceptedWay
	var relations []*osm.Relation

	for {
		f, err := src.Next()
		if err == io.EOF {
			break
		}
		if errors.Is(err, osm.ErrMalformedFeature) {
			cfg.Logger.Warn("malformed feature", "err", err)

			continue
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSourceFailed, err)
		}

		switch {
		case f.Node != nil:
			nodePos[f.Node.ID] = distance.Position{Lat: f.Node.Lat, Lon: f.Node.Lon}
		case f.Way != nil:
			wayNodes[f.Way.ID] = f.Way.Nodes
			penalty := profile.WayPenalty(f.Way.Tags)
			if penalty == osmprofile.NoPenalty || !profile.IsAccessAllowed(f.Way.Tags) {
				continue
			}
			accepted = append(accepted, acceptedWay{
				nodes:     f.Way.Nodes,
				direction: profile.WayDirection(f.Way.Tags),
				penalty:   penalty,
			})
		case f.Relation != nil:
			relations = append(relations, f.Relation)
		}
	}

	ensureNode := func(id int64) bool {
		pos, ok := nodePos[id]
		if !ok {
			return false
		}
		if !g.HasNode(id) {
			g.AddNode(graph.Node[int64]{ID: id, Pos: pos})
		}

		return true
	}

	for _, w := range accepted {
		for i := 0; i+1 < len(w.nodes); i++ {
			a, b := w.nodes[i], w.nodes[i+1]
			if !ensureNode(a) || !ensureNode(b) {
				// Way references a missing node: silently drop this
				// segment.
				continue
			}
			posA, posB := nodePos[a], nodePos[b]
			cost := distance.Haversine(posA, posB) * w.penalty

			if w.direction == osmprofile.Forward || w.direction == osmprofile.Both {
				if err := g.AddEdge(a, b, cost); err != nil {
					return err
				}
			}
			if w.direction == osmprofile.Backward || w.direction == osmprofile.Both {
				if err := g.AddEdge(b, a, cost); err != nil {
					return err
				}
			}
		}
	}

	for _, rel := range relations {
		class := profile.IsTurnRestriction(rel.Tags)
		if class != osmprofile.RestrictionMandatory && class != osmprofile.RestrictionProhibitory {
			continue
		}

		chain, err := resolveChain(rel, wayNodes)
		if err != nil {
			cfg.Logger.Warn("malformed turn restriction", "relation", rel.ID, "err", err)

			continue
		}

		kind := graph.RestrictionProhibit
		if class == osmprofile.RestrictionMandatory {
			kind = graph.RestrictionMandate
		}
		if err := g.Restrictions().Add(kind, chain[:len(chain)-1], chain[len(chain)-1]); err != nil {
			cfg.Logger.Warn("malformed turn restriction", "relation", rel.ID, "err", err)
		}
	}

	return nil
}
