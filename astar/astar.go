package astar

import (
	"container/heap"

	"github.com/katalvlaran/osmroute/distance"
	"github.com/katalvlaran/osmroute/graph"
)

// defaultStepLimit is the default cap on popped states.
const defaultStepLimit = 1_000_000

// Graph is the narrow protocol astar.FindRoute consumes: get a node (for
// positions, used by the default heuristic) and list outgoing edges.
type Graph[K comparable] interface {
	GetNode(id K) (graph.Node[K], error)
	EdgesFrom(id K) []graph.Edge[K]
}

// TurnRestrictor is the optional protocol a Graph may additionally
// implement to have its turn restrictions honoured. A graph that doesn't
// implement it is treated as having no restrictions at all.
type TurnRestrictor[K comparable] interface {
	IsTurnRestricted(prefix []K) graph.Decision[K]
}

// ChainDepth is the optional protocol a TurnRestrictor may additionally
// implement to report the longest restriction chain recorded at build
// time, bounding how far back along the path the search needs to look.
// Absent this, the search only ever checks the immediate (previous,
// current) pair.
type ChainDepth interface {
	LongestChain() int
}

// Heuristic estimates the remaining cost from u to end. It MUST be
// admissible (never overestimate true remaining cost) for the result to be
// optimal; astar does not and cannot verify this.
type Heuristic[K comparable] func(u, end K) float64

// Options configures a single FindRoute/FindRouteWithoutTurnAround call.
type Options[K comparable] struct {
	Heuristic Heuristic[K]
	StepLimit int
}

// Option mutates Options.
type Option[K comparable] func(*Options[K])

// WithHeuristic overrides the default haversine-between-positions
// heuristic.
func WithHeuristic[K comparable](h Heuristic[K]) Option[K] {
	return func(o *Options[K]) { o.Heuristic = h }
}

// WithStepLimit overrides the default step limit of 1,000,000.
func WithStepLimit[K comparable](limit int) Option[K] {
	return func(o *Options[K]) { o.StepLimit = limit }
}

func resolveOptions[K comparable](g Graph[K], opts []Option[K]) Options[K] {
	cfg := Options[K]{StepLimit: defaultStepLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Heuristic == nil {
		cfg.Heuristic = func(u, end K) float64 {
			nu, errU := g.GetNode(u)
			ne, errEnd := g.GetNode(end)
			if errU != nil || errEnd != nil {
				return 0
			}

			return distance.Haversine(nu.Pos, ne.Pos)
		}
	}

	return cfg
}

// FindRoute returns the minimum-cost sequence of node ids from start to
// end, honouring any turn restrictions the graph reports. An empty,
// non-nil slice (with nil error) means no path exists. ErrNotFound means
// start or end is not a node of g; ErrStepLimitExceeded means the search
// popped more states than its step limit without reaching end.
func FindRoute[K comparable](g Graph[K], start, end K, opts ...Option[K]) ([]K, error) {
	return search(g, start, end, resolveOptions(g, opts), false)
}

// FindRouteWithoutTurnAround is FindRoute with one additional constraint:
// the path may never immediately return along the edge it just arrived on
// (state (p,u) may not expand to v==p). This does not replace the turn
// restriction table — a path can still u-turn at a dead end by visiting a
// distinct node first.
func FindRouteWithoutTurnAround[K comparable](g Graph[K], start, end K, opts ...Option[K]) ([]K, error) {
	return search(g, start, end, resolveOptions(g, opts), true)
}

// state is the A* search state: the node just arrived at, and the node it
// was arrived from (if any). Keying on the pair rather than just the
// current node is what lets turn restrictions be enforced without an
// edge-expanded graph.
type state[K comparable] struct {
	hasPrev bool
	prev    K
	cur     K
}

func search[K comparable](g Graph[K], start, end K, cfg Options[K], forbidTurnAround bool) ([]K, error) {
	if _, err := g.GetNode(start); err != nil {
		return nil, ErrNotFound
	}
	if _, err := g.GetNode(end); err != nil {
		return nil, ErrNotFound
	}

	tr, _ := g.(TurnRestrictor[K])
	maxChain := 2
	if tr != nil {
		if cd, ok := tr.(ChainDepth); ok && cd.LongestChain() > 0 {
			maxChain = cd.LongestChain()
		}
	}

	startState := state[K]{cur: start}

	open := &priorityQueue[K]{}
	heap.Init(open)
	var seq int64
	push := func(s state[K], gCost, f float64) {
		heap.Push(open, &entry[K]{state: s, g: gCost, f: f, seq: seq})
		seq++
	}

	gScore := map[state[K]]float64{startState: 0}
	cameFrom := map[state[K]]state[K]{}
	closed := map[state[K]]bool{}

	push(startState, 0, cfg.Heuristic(start, end))

	steps := 0
	for open.Len() > 0 {
		cur := heap.Pop(open).(*entry[K])
		steps++
		if steps > cfg.StepLimit {
			return nil, ErrStepLimitExceeded
		}
		if closed[cur.state] {
			continue
		}
		if cur.state.cur == end {
			return reconstructPath(cameFrom, cur.state), nil
		}
		closed[cur.state] = true

		var tail []K
		if tr != nil {
			tail = reconstructTail(cameFrom, cur.state, maxChain-1)
		}

		var restriction graph.Decision[K]
		if tr != nil {
			restriction = tr.IsTurnRestricted(tail)
		}

		for _, e := range g.EdgesFrom(cur.state.cur) {
			v := e.To
			if forbidTurnAround && cur.state.hasPrev && v == cur.state.prev {
				continue
			}
			switch restriction.Kind {
			case graph.RestrictionProhibit:
				if _, forbidden := restriction.Targets[v]; forbidden {
					continue
				}
			case graph.RestrictionMandate:
				if _, ok := restriction.Targets[v]; !ok {
					continue
				}
			}

			next := state[K]{hasPrev: true, prev: cur.state.cur, cur: v}
			if closed[next] {
				continue
			}
			tentativeG := cur.g + e.Cost
			if existing, ok := gScore[next]; ok && tentativeG >= existing {
				continue
			}
			gScore[next] = tentativeG
			cameFrom[next] = cur.state
			push(next, tentativeG, tentativeG+cfg.Heuristic(v, end))
		}
	}

	return []K{}, nil
}

// reconstructPath walks cameFrom back from goal to the start state,
// collecting cur at each step, then reverses.
func reconstructPath[K comparable](cameFrom map[state[K]]state[K], goal state[K]) []K {
	path := []K{goal.cur}
	cur := goal
	for cur.hasPrev {
		parent, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, parent.cur)
		cur = parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// reconstructTail walks cameFrom back from s, collecting up to extra
// predecessor nodes before s.cur, for a total tail of at most extra+1
// nodes ending at s.cur — the most recent slice of the path the turn
// restriction table needs to see.
func reconstructTail[K comparable](cameFrom map[state[K]]state[K], s state[K], extra int) []K {
	tail := []K{s.cur}
	cur := s
	for i := 0; i < extra; i++ {
		if !cur.hasPrev {
			break
		}
		tail = append([]K{cur.prev}, tail...)
		parent, ok := cameFrom[cur]
		if !ok {
			break
		}
		cur = parent
	}

	return tail
}

// entry is one item in the open heap.
type entry[K comparable] struct {
	state state[K]
	g, f  float64
	seq   int64
	index int
}

type priorityQueue[K comparable] []*entry[K]

func (pq priorityQueue[K]) Len() int { return len(pq) }

// Less orders by f ascending, then by insertion sequence ascending: a
// FIFO tie-break so output is deterministic regardless of map/heap
// iteration order.
func (pq priorityQueue[K]) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}

	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue[K]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue[K]) Push(x any) {
	e := x.(*entry[K])
	e.index = len(*pq)
	*pq = append(*pq, e)
}

func (pq *priorityQueue[K]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
