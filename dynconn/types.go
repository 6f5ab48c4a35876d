// File: types.go
// Role: Graph, level, edgeKey, Option, and sentinel errors.
package dynconn

import (
	"errors"

	"github.com/katalvlaran/dynconn/etf"
)

// ErrInvariantViolation marks an internal HLT invariant failure (e.g. an
// ETF missing a tree edge the level's bookkeeping says it owns). Such
// states indicate implementation bugs, not caller error. Graph's own
// operations do not check the invariants and never raise this sentinel;
// the package's test-side invariant checker panics with an error wrapping
// it, and tests that want to observe this without crashing the test binary
// can recover and check errors.Is(recovered.(error), ErrInvariantViolation).
var ErrInvariantViolation = errors.New("dynconn: internal invariant violation")

// edgeKey is a normalized (unordered) undirected edge identity: A <= B
// lexicographically, so {u,v} and {v,u} always hash to the same key.
type edgeKey struct {
	A, B string
}

func normalize(u, v string) edgeKey {
	if u <= v {
		return edgeKey{u, v}
	}
	return edgeKey{v, u}
}

// level holds one HLT level's spanning forest and its tree/non-tree edge
// bookkeeping. nontree is stored as an adjacency map (mirrored both
// directions, like core.Graph.adjacencyList) so the replacement search in
// DeleteEdge can enumerate a vertex's non-tree neighbors directly, per
// spec §4.3.3 ("for each y in nontreeᵢ[x]").
type level struct {
	forest  *etf.Forest
	tree    map[edgeKey]struct{}
	nontree map[string]map[string]struct{}
}

func newLevel(vertices []string) level {
	return level{
		forest:  etf.DiscreteForest(vertices),
		tree:    make(map[edgeKey]struct{}),
		nontree: make(map[string]map[string]struct{}),
	}
}

// Option configures a Graph at construction time, mirroring core's
// functional-option convention (core.GraphOption).
type Option func(*Graph)

// WithCapacityHint pre-sizes the vertex adjacency map for n expected
// vertices. Purely an allocation hint; it changes no behavior.
func WithCapacityHint(n int) Option {
	return func(g *Graph) {
		if n > 0 {
			g.allEdges = make(map[string]map[string]struct{}, n)
		}
	}
}

// Graph is the public HLT levels structure: a dynamic-length vector of
// (etf, treeEdges, nonTreeEdges) triples indexed by level, plus the global
// edge adjacency and edge count (spec §3.5).
type Graph struct {
	allEdges map[string]map[string]struct{} // V -> set of V, every current undirected edge
	numEdges int
	levels   []level
}

// NewGraph returns an empty Graph with no vertices, no edges, and no
// levels. Levels are created lazily by InsertEdge as numEdges grows past
// each power-of-two threshold.
func NewGraph(opts ...Option) *Graph {
	g := &Graph{allEdges: make(map[string]map[string]struct{})}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FromVertices returns a Graph pre-populated with the given vertices and
// no edges.
func FromVertices(vs []string) *Graph {
	g := NewGraph(WithCapacityHint(len(vs)))
	for _, v := range vs {
		g.InsertVertex(v)
	}
	return g
}

// Stats is a diagnostic snapshot, grounded on core.Graph.Stats()'s
// "O(V+E) snapshot; rely on it for quick admissions/diagnostics" role.
type Stats struct {
	NumVertices int
	NumEdges    int
	NumLevels   int
}

// Stats returns a snapshot of the graph's current size.
func (g *Graph) Stats() Stats {
	return Stats{
		NumVertices: len(g.allEdges),
		NumEdges:    g.numEdges,
		NumLevels:   len(g.levels),
	}
}
