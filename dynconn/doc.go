// Package dynconn implements the Holm–Lichtenberg–Thorup (HLT) levels
// structure for fully dynamic graph connectivity: maintaining an
// undirected graph under edge/vertex insertion and deletion while
// answering Connected(u,v) queries in amortized poly-logarithmic time.
//
// Graph layers an etf.Forest per level 0..L-1, L = floor(log2(numEdges))+1,
// over the global edge adjacency (allEdges). Level 0 spans the whole
// graph; each level i keeps a spanning forest of the subgraph restricted
// to edges assigned level >= i, plus the set of edges that are tree edges
// and non-tree edges at that level. DeleteEdge hunts top-down for a
// replacement edge crossing the cut, promoting tree edges of the smaller
// side and "punishing" purely-internal non-tree edges to the level above
// as it goes — see graph.go's DeleteEdge for the full algorithm.
//
// Concurrency: a Graph exclusively owns its level vector, its ETFs, and
// all their sequence nodes; it is not safe for concurrent use by multiple
// goroutines (unlike core.Graph, which guards its state with sync.RWMutex
// — dynconn.Graph intentionally carries no such lock, per spec §5's
// single-threaded cooperative model).
package dynconn
