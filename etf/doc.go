// Package etf implements an Euler-tour forest: a directory from directed
// edges (u,v) — including self-loops (v,v) standing for a singleton
// vertex — to a node handle in a seq.Tree sequence. Each tree of the
// forest is represented by one sequence whose elements are the directed
// edges of an Euler tour of that tree, so link/cut/connected/reroot and
// component-size queries all reduce to seq operations.
//
// The annotation monoid is fixed to seq.SumMonoid: a self-loop (v,v)
// carries annotation 1, every other edge carries 0, so a sequence's
// aggregate equals the number of vertices in its tree — see ComponentSize.
//
// Grounded on core.Graph's adjacency-map bookkeeping style
// (core/methods_adjacent.go), simplified to a flat directedEdge->Handle
// map since ETF only ever needs O(1) existence + handle lookup.
package etf
