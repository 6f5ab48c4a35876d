// Package seq implements an annotated sequence: a splay tree whose
// in-order traversal defines an ordered sequence of labeled elements, each
// carrying a monoid annotation, with a cached subtree aggregate maintained
// under every structural change.
//
// Unlike a classic BST, a seq.Tree has no key order of its own — position
// in the sequence is implicit in tree shape, not derived from comparing
// labels. Splitting, appending, and querying are all driven by handles,
// not keys.
//
// Nodes live in a single arena owned by the Tree (its nodes field, in
// types.go); a Handle is a stable arena index that survives rotations,
// splits, and appends — the same "stable reference into a slice-backed
// structure" shape used throughout lvlath for adjacency bookkeeping.
//
//	seq/       — this package: Tree, Handle, Monoid, splay discipline
//	etf/       — Euler-tour forest built on seq
//	dynconn/   — HLT levels structure built on etf
package seq
