// File: types.go
// Role: DirectedEdge label, the Forest type, and the rooted-tree input to
//       FromTree.
package etf

import "github.com/katalvlaran/dynconn/seq"

// DirectedEdge is the label attached to every seq element an ETF manages.
// A self-loop DirectedEdge{V, V} stands for a singleton vertex; any other
// DirectedEdge{From, To} is one of the two directed occurrences of an
// undirected tree edge {From, To}.
type DirectedEdge struct {
	From string
	To   string
}

// Forest maps every directed edge currently represented in the forest to
// its seq.Handle, backed by one shared seq.Tree arena. Two vertices are in
// the same tree of the forest iff their self-loop handles share a root
// (seq.Tree.Connected).
type Forest struct {
	seq    *seq.Tree
	byEdge map[DirectedEdge]seq.Handle
}

// newForest allocates an empty Forest over a fresh seq.Tree configured
// with the counting monoid (spec §3.2: A = (integer, +, 0)).
func newForest() *Forest {
	return &Forest{
		seq:    seq.NewTree(seq.SumMonoid{}),
		byEdge: make(map[DirectedEdge]seq.Handle),
	}
}

// RootedTree is the input to FromTree: a tree given by explicit parent/child
// structure, built by the caller however is convenient (e.g. from a BFS/DFS
// traversal of a core.Graph spanning tree).
type RootedTree struct {
	Label    string
	Children []*RootedTree
}
