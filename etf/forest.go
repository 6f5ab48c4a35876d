// File: forest.go
// Role: Public ETF contract — construction, queries, link (InsertEdge),
//       cut (DeleteEdge), vertex lifecycle, reroot, and the debug dump.
//
// Every exported method here is a thin adapter over seq.Tree operations on
// byEdge's handles, per spec §4.2: "ETF and Levels layers depend only on
// the sequence contract."
package etf

import "github.com/katalvlaran/dynconn/seq"

// DiscreteForest constructs an ETF whose trees are the singletons {v} for
// each v in vs: one self-loop per vertex, annotated 1, no edges.
func DiscreteForest(vs []string) *Forest {
	f := newForest()
	for _, v := range vs {
		f.InsertVertex(v)
	}
	return f
}

// FromTree constructs the ETF of a single rooted tree by DFS: at each node
// l, emit (l,l), then for each child c, recurse, surround the child's
// sequence with (l,c) before and (c,l) after, and concatenate.
func FromTree(t *RootedTree) *Forest {
	f := newForest()
	f.buildDFS(t)
	return f
}

func (f *Forest) buildDFS(t *RootedTree) seq.Handle {
	self := f.seq.Singleton(DirectedEdge{t.Label, t.Label}, 1)
	f.byEdge[DirectedEdge{t.Label, t.Label}] = self

	tour := self
	for _, child := range t.Children {
		childTour := f.buildDFS(child)

		down := f.seq.Singleton(DirectedEdge{t.Label, child.Label}, 0)
		up := f.seq.Singleton(DirectedEdge{child.Label, t.Label}, 0)
		f.byEdge[DirectedEdge{t.Label, child.Label}] = down
		f.byEdge[DirectedEdge{child.Label, t.Label}] = up

		tour = f.seq.Concat(tour, down, childTour, up)
	}
	return tour
}

// FindRoot returns the root handle of v's sequence, or (Nil, false) if v is
// unknown to this forest.
func (f *Forest) FindRoot(v string) (seq.Handle, bool) {
	h, ok := f.byEdge[DirectedEdge{v, v}]
	if !ok {
		return seq.Nil, false
	}
	return f.seq.Root(h), true
}

// Connected reports whether u and v are in the same tree. The second
// return is false ("unknown") if either vertex is absent from the forest.
func (f *Forest) Connected(u, v string) (connected bool, ok bool) {
	hu, ok1 := f.byEdge[DirectedEdge{u, u}]
	hv, ok2 := f.byEdge[DirectedEdge{v, v}]
	if !ok1 || !ok2 {
		return false, false
	}
	return f.seq.Connected(hu, hv), true
}

// HasEdge reports whether the directed edge (u,v) is currently represented.
func (f *Forest) HasEdge(u, v string) bool {
	_, ok := f.byEdge[DirectedEdge{u, v}]
	return ok
}

// ComponentSize returns the number of vertices in v's tree, or (0, false)
// if v is unknown.
func (f *Forest) ComponentSize(v string) (int64, bool) {
	h, ok := f.byEdge[DirectedEdge{v, v}]
	if !ok {
		return 0, false
	}
	return f.seq.Aggregate(h), true
}

// InsertVertex adds a self-loop for v if it is not already known. No-op if
// v is already present.
func (f *Forest) InsertVertex(v string) {
	if _, ok := f.byEdge[DirectedEdge{v, v}]; ok {
		return
	}
	h := f.seq.Singleton(DirectedEdge{v, v}, 1)
	f.byEdge[DirectedEdge{v, v}] = h
}

// DeleteVertex removes v's self-loop. Returns false if v is unknown. The
// caller is responsible for first removing every edge incident to v (the
// Levels layer does this in dynconn.Graph.DeleteVertex); DeleteVertex
// itself only ever touches the self-loop element.
func (f *Forest) DeleteVertex(v string) bool {
	h, ok := f.byEdge[DirectedEdge{v, v}]
	if !ok {
		return false
	}
	delete(f.byEdge, DirectedEdge{v, v})

	left, _ := f.seq.Split(h)
	next := f.seq.Next(h)
	var rest seq.Handle
	if next != seq.Nil {
		_, rest = f.seq.Split(next)
	}
	f.seq.Append(left, rest)
	return true
}

// reroot splits the sequence containing h just before h and re-concatenates
// [rightPart, leftPart], producing the same cyclic tour starting at h.
func (f *Forest) reroot(h seq.Handle) {
	left, right := f.seq.Split(h)
	f.seq.Append(right, left)
}

// Reroot re-tours v's tree so it starts at v. Returns false if v is
// unknown.
func (f *Forest) Reroot(v string) bool {
	h, ok := f.byEdge[DirectedEdge{v, v}]
	if !ok {
		return false
	}
	f.reroot(h)
	return true
}

// InsertEdge links u and v with a new tree edge, iff u != v, both are
// known, and they are not already connected. Returns whether the link was
// made.
//
// Implementation (spec §4.2): reroot v's tree at v, reroot u's tree at u,
// then splice v's whole tour between u's self-loop and the rest of u's
// tour: [uLoop, (u,v), vTour, (v,u), restOfU].
func (f *Forest) InsertEdge(u, v string) bool {
	if u == v {
		return false
	}
	hu, ok1 := f.byEdge[DirectedEdge{u, u}]
	hv, ok2 := f.byEdge[DirectedEdge{v, v}]
	if !ok1 || !ok2 {
		return false
	}
	if f.seq.Connected(hu, hv) {
		return false
	}

	f.reroot(hv)
	f.reroot(hu)

	var uLoopPart, restU seq.Handle
	if next := f.seq.Next(hu); next == seq.Nil {
		uLoopPart, restU = hu, seq.Nil
	} else {
		uLoopPart, restU = f.seq.Split(next)
	}

	down := f.seq.Singleton(DirectedEdge{u, v}, 0)
	up := f.seq.Singleton(DirectedEdge{v, u}, 0)
	f.byEdge[DirectedEdge{u, v}] = down
	f.byEdge[DirectedEdge{v, u}] = up

	vTour := f.seq.Root(hv)

	f.seq.Concat(uLoopPart, down, vTour, up, restU)
	return true
}

// DeleteEdge removes the tree edge {u,v}, splitting its tree into two.
// Returns false if u == v or either directed occurrence is missing.
//
// Cut correctness (spec §4.2): an Euler tour visits every tree edge twice;
// whichever of (u,v)/(v,u) occurs first in the sequence is "first", the
// other "second". The subsequence strictly between them is the subtree
// rooted at the far endpoint, and becomes one of the two resulting trees;
// everything outside that range, rejoined, becomes the other.
func (f *Forest) DeleteEdge(u, v string) bool {
	if u == v {
		return false
	}
	e1, ok1 := f.byEdge[DirectedEdge{u, v}]
	e2, ok2 := f.byEdge[DirectedEdge{v, u}]
	if !ok1 || !ok2 {
		return false
	}

	before1, afterInc1 := f.seq.Split(e1)
	first, second := e1, e2
	beforeFirst, afterIncFirst := before1, afterInc1
	if !f.seq.Connected(afterIncFirst, e2) {
		// e2 occurred before e1 in the tour: undo, then split at e2 instead.
		f.seq.Append(before1, afterInc1)
		beforeFirst, afterIncFirst = f.seq.Split(e2)
		first, second = e2, e1
	}

	// Bound the region to [first..second) — second now heads its own
	// trailing piece — so the Next/Split peel of first below only ever
	// walks within that region, never past second.
	f.seq.Split(second)

	var innerTour, afterSecond seq.Handle
	if next := f.seq.Next(first); next == seq.Nil {
		innerTour = seq.Nil
	} else {
		_, innerTour = f.seq.Split(next)
	}
	if next := f.seq.Next(second); next == seq.Nil {
		afterSecond = seq.Nil
	} else {
		_, afterSecond = f.seq.Split(next)
	}

	f.seq.Append(beforeFirst, afterSecond)

	delete(f.byEdge, DirectedEdge{u, v})
	delete(f.byEdge, DirectedEdge{v, u})
	_ = innerTour // the detached subtree now forms the other resulting tree
	return true
}

// Vertices returns the vertex set of v's tree, extracted by scanning the
// in-order tour of v's root and keeping only self-loop labels (spec
// §4.3.3: "sVertices... scanning toList of its root and taking elements
// whose label is a self-loop"). Returns (nil, false) if v is unknown.
func (f *Forest) Vertices(v string) ([]string, bool) {
	h, ok := f.byEdge[DirectedEdge{v, v}]
	if !ok {
		return nil, false
	}
	root := f.seq.Root(h)
	labels := f.seq.ToList(root)

	vs := make([]string, 0, len(labels)/2+1)
	for _, l := range labels {
		e := l.(DirectedEdge)
		if e.From == e.To {
			vs = append(vs, e.From)
		}
	}
	return vs, true
}

// TourDump is one tree's in-order Euler tour, for diagnostics only
// (spec §6: "debug dump of an ETF... optional").
type TourDump struct {
	Edges []DirectedEdge
}

// Dump returns every tree currently in the forest as its in-order sequence
// of directed edges, one entry per tree. Trees are found through their
// vertices' self-loops; a vertex already listed in an earlier tour does not
// start a new entry.
func (f *Forest) Dump() []TourDump {
	seen := make(map[string]bool)
	var out []TourDump
	for e, h := range f.byEdge {
		if e.From != e.To || seen[e.From] {
			continue
		}

		labels := f.seq.ToList(f.seq.Root(h))
		edges := make([]DirectedEdge, len(labels))
		for i, l := range labels {
			edges[i] = l.(DirectedEdge)
			if edges[i].From == edges[i].To {
				seen[edges[i].From] = true
			}
		}
		out = append(out, TourDump{Edges: edges})
	}
	return out
}
