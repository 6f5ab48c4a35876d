// File: graph.go
// Role: Public operations — InsertVertex, DeleteVertex, InsertEdge,
//       HasEdge, Connected, ComponentSize, DeleteEdge (the hard case).
package dynconn

import (
	"math/bits"
	"sort"
)

// InsertVertex adds v with no incident edges, and installs a self-loop for
// v in every existing level's ETF. No-op if v is already known.
func (g *Graph) InsertVertex(v string) {
	if _, ok := g.allEdges[v]; ok {
		return
	}
	g.allEdges[v] = make(map[string]struct{})
	for i := range g.levels {
		g.levels[i].forest.InsertVertex(v)
	}
}

// DeleteVertex removes every edge incident to v via DeleteEdge, then drops
// v's self-loop from every level's ETF and v itself from the graph. No-op
// if v is unknown.
func (g *Graph) DeleteVertex(v string) {
	neighbors, ok := g.allEdges[v]
	if !ok {
		return
	}

	ns := make([]string, 0, len(neighbors))
	for n := range neighbors {
		ns = append(ns, n)
	}
	sort.Strings(ns) // deterministic cascade order
	for _, n := range ns {
		g.DeleteEdge(v, n)
	}

	for i := range g.levels {
		g.levels[i].forest.DeleteVertex(v)
	}
	delete(g.allEdges, v)
}

// HasEdge reports whether {u,v} currently exists in the graph.
func (g *Graph) HasEdge(u, v string) bool {
	if u == v {
		return false
	}
	nbrs, ok := g.allEdges[u]
	if !ok {
		return false
	}
	_, exists := nbrs[v]
	return exists
}

// Connected reports whether u and v are connected. True unconditionally
// when u == v (spec §4.3.2); otherwise delegates to level 0's ETF. The
// second return is false only when u != v and either vertex is unknown.
func (g *Graph) Connected(u, v string) (connected bool, ok bool) {
	if u == v {
		return true, true
	}
	if len(g.levels) == 0 {
		_, ok1 := g.allEdges[u]
		_, ok2 := g.allEdges[v]
		if !ok1 || !ok2 {
			return false, false
		}
		return false, true // known vertices, no edges ever inserted
	}
	return g.levels[0].forest.Connected(u, v)
}

// ComponentSize returns the number of vertices in v's connected component
// at level 0, or (0, false) if v is unknown.
func (g *Graph) ComponentSize(v string) (int64, bool) {
	if _, ok := g.allEdges[v]; !ok {
		return 0, false
	}
	if len(g.levels) == 0 {
		return 1, true
	}
	return g.levels[0].forest.ComponentSize(v)
}

// levelsRequired returns L = floor(log2(numEdges))+1 for numEdges >= 1.
func levelsRequired(numEdges int) int {
	return bits.Len(uint(numEdges))
}

// InsertEdge adds {u,v} to the graph. No-op if u == v, either vertex is
// unknown, or the edge already exists. Otherwise grows the level vector
// if the new edge count crosses a power-of-two threshold (installing a
// fresh all-self-loop ETF at each newly created level), then attempts the
// link at level 0: success makes {u,v} a tree edge there, failure makes
// it a non-tree edge there. Spec §4.3.1.
func (g *Graph) InsertEdge(u, v string) {
	if u == v {
		return
	}
	if _, ok := g.allEdges[u]; !ok {
		return
	}
	if _, ok := g.allEdges[v]; !ok {
		return
	}
	if _, dup := g.allEdges[u][v]; dup {
		return
	}

	newNumEdges := g.numEdges + 1
	requiredL := levelsRequired(newNumEdges)
	for len(g.levels) < requiredL {
		g.levels = append(g.levels, newLevel(g.vertexList()))
	}

	ek := normalize(u, v)
	if g.levels[0].forest.InsertEdge(u, v) {
		g.levels[0].tree[ek] = struct{}{}
	} else {
		g.addNontree(0, u, v)
	}

	g.allEdges[u][v] = struct{}{}
	g.allEdges[v][u] = struct{}{}
	g.numEdges = newNumEdges
}

// DeleteEdge removes {u,v} from the graph, repairing the spanning forest
// at every level by hunting for a replacement edge. Spec §4.3.3.
func (g *Graph) DeleteEdge(u, v string) {
	if u == v {
		return
	}
	if !g.HasEdge(u, v) {
		return
	}
	delete(g.allEdges[u], v)
	delete(g.allEdges[v], u)
	g.numEdges--

	if len(g.levels) == 0 {
		return
	}

	ek := normalize(u, v)

	// Scan top-down. An edge whose own (current) level is k is physically
	// linked as a tree edge in levels 0..k (promotion only ever adds it to
	// a higher etf, never removes it from a lower one — see SPEC_FULL.md
	// §9), so levels above k will fail to delete it (Case A, a harmless
	// no-op here) while levels k down to 0 each succeed and independently
	// hunt for a replacement, exactly as spec §4.3.3 describes: attempt
	// the deletion at this level first, and branch on whether it worked.
	for i := len(g.levels) - 1; i >= 0; i-- {
		lvl := &g.levels[i]

		if !lvl.forest.DeleteEdge(u, v) {
			g.removeNontree(i, u, v)
			if i == 0 {
				return
			}
			continue
		}
		delete(lvl.tree, ek)

		sVertices := g.smallerSide(lvl, u, v)
		sSet := toSet(sVertices)

		g.promote(i, sSet)

		if replacement, found := g.findReplacement(i, sVertices, sSet); found {
			g.installReplacement(i, u, v, replacement)
			return
		}

		if i == 0 {
			return
		}
	}
}

// smallerSide determines which of u's and v's (now-distinct) trees at
// level lvl is smaller, and returns its vertex set.
func (g *Graph) smallerSide(lvl *level, u, v string) []string {
	sizeU, _ := lvl.forest.ComponentSize(u)
	sizeV, _ := lvl.forest.ComponentSize(v)
	rep := u
	if sizeV < sizeU {
		rep = v
	}
	vs, _ := lvl.forest.Vertices(rep)
	return vs
}

func toSet(vs []string) map[string]bool {
	s := make(map[string]bool, len(vs))
	for _, v := range vs {
		s[v] = true
	}
	return s
}

// promote moves every tree edge of S at level i, not already a tree edge
// at level i+1, up to level i+1 (spec §4.3.3 "Promotion"). No-op if level
// i is the topmost level.
func (g *Graph) promote(i int, sSet map[string]bool) {
	if i+1 >= len(g.levels) {
		return
	}
	lvl := &g.levels[i]
	higher := &g.levels[i+1]
	for te := range lvl.tree {
		if !sSet[te.A] || !sSet[te.B] {
			continue
		}
		if _, already := higher.tree[te]; already {
			continue
		}
		higher.forest.InsertEdge(te.A, te.B)
		higher.tree[te] = struct{}{}
		delete(lvl.tree, te)
	}
}

// findReplacement scans S's non-tree neighbors in deterministic order.
// Any edge with both endpoints inside S is punished (promoted to level
// i+1 as a non-tree edge, if a higher level exists); the first edge
// crossing the cut is returned as the replacement candidate.
func (g *Graph) findReplacement(i int, sVertices []string, sSet map[string]bool) (edgeKey, bool) {
	sorted := append([]string(nil), sVertices...)
	sort.Strings(sorted)

	for _, x := range sorted {
		lvl := &g.levels[i]
		neighbors := lvl.nontree[x]
		if len(neighbors) == 0 {
			continue
		}
		ys := make([]string, 0, len(neighbors))
		for y := range neighbors {
			ys = append(ys, y)
		}
		sort.Strings(ys)

		for _, y := range ys {
			if sSet[y] {
				g.punish(i, x, y)
				continue
			}
			return normalize(x, y), true
		}
	}
	return edgeKey{}, false
}

// punish moves a non-tree edge lying entirely inside S up to level i+1.
// No-op (the edge stays at level i) if i is the topmost level.
func (g *Graph) punish(i int, x, y string) {
	if i+1 >= len(g.levels) {
		return
	}
	g.removeNontree(i, x, y)
	g.addNontree(i+1, x, y)
}

// installReplacement makes the found edge a tree edge at level i and
// propagates the spanning-forest change down through every level below i
// (the ETFs only — per the resolved open question in SPEC_FULL.md §9,
// levels below i never held the cut edge {u,v} in their tree/non-tree
// sets, so only the ETF forests need the obsolete edge swapped out).
func (g *Graph) installReplacement(i int, u, v string, c edgeKey) {
	lvl := &g.levels[i]
	g.removeNontree(i, c.A, c.B)
	lvl.tree[c] = struct{}{}
	lvl.forest.InsertEdge(c.A, c.B)

	for j := 0; j < i; j++ {
		lower := &g.levels[j]
		lower.forest.DeleteEdge(u, v)
		lower.forest.InsertEdge(c.A, c.B)
	}
}

func (g *Graph) addNontree(i int, u, v string) {
	lvl := &g.levels[i]
	if lvl.nontree[u] == nil {
		lvl.nontree[u] = make(map[string]struct{})
	}
	lvl.nontree[u][v] = struct{}{}
	if lvl.nontree[v] == nil {
		lvl.nontree[v] = make(map[string]struct{})
	}
	lvl.nontree[v][u] = struct{}{}
}

func (g *Graph) removeNontree(i int, u, v string) {
	lvl := &g.levels[i]
	if m, ok := lvl.nontree[u]; ok {
		delete(m, v)
	}
	if m, ok := lvl.nontree[v]; ok {
		delete(m, u)
	}
}

func (g *Graph) vertexList() []string {
	vs := make([]string, 0, len(g.allEdges))
	for v := range g.allEdges {
		vs = append(vs, v)
	}
	sort.Strings(vs)
	return vs
}
