// Package tree ingests external clustering results as ordered merge
// instructions over a group arena.
//
// Two encodings are supported: the binary linkage matrix produced by
// agglomerative hierarchical clustering, and the n-ary condensed tree
// produced by density-based hierarchical clustering. Both are variants of
// one concept, captured by the Builder interface.
package tree

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hupe1980/ringscore/group"
)

// ErrMalformedTree is returned when an external tree encoding references
// nodes that cannot exist. Use errors.Is to match; the concrete error is a
// *MalformedTreeError carrying the offending ids.
var ErrMalformedTree = errors.New("malformed tree")

// MalformedTreeError indicates a structural failure in an external tree
// encoding: a row references a node with no prior row establishing it.
// This is not retried, it indicates malformed upstream input.
type MalformedTreeError struct {
	Parent int
	Child  int
}

func (e *MalformedTreeError) Error() string {
	return fmt.Sprintf(
		"tree row (parent=%d, child=%d) references an unbuilt node: "+
			"expected one row per parent-child pair, parent ids at or above the "+
			"number of leaves, and every referenced child established by a prior row",
		e.Parent, e.Child)
}

func (e *MalformedTreeError) Unwrap() error { return ErrMalformedTree }

// Builder replays an external tree encoding as merge instructions over a
// Forest that already contains the leaf nodes with arena ids [0, nLeaves).
//
// visit is called exactly once per internal node, immediately after its
// construction, with the node's external id and its arena id. External ids
// mirror the input encoding's own addressing so callers can correlate
// results back to tree positions.
type Builder interface {
	// NumNodes returns the total number of external node ids (leaves plus
	// internal nodes) for a forest with nLeaves leaves.
	NumNodes(nLeaves int) int

	// Build applies the merge instructions.
	Build(f *group.Forest, nLeaves int, visit func(externalID, arenaID int)) error
}

// LinkageRow names two previously-built nodes merged by one linkage step.
// Leaves are ids [0, nLeaves); row i produces node id nLeaves+i.
type LinkageRow struct {
	Left  int
	Right int
}

// Linkage is a binary linkage matrix, processed strictly in row order.
type Linkage []LinkageRow

// NumNodes implements Builder.
func (l Linkage) NumNodes(nLeaves int) int {
	return nLeaves + len(l)
}

// Build implements Builder. Each row is one pairwise merge; because every
// merge appends exactly one node, arena ids coincide with external ids.
func (l Linkage) Build(f *group.Forest, nLeaves int, visit func(externalID, arenaID int)) error {
	for i, row := range l {
		limit := nLeaves + i
		if row.Left < 0 || row.Left >= limit {
			return &MalformedTreeError{Parent: limit, Child: row.Left}
		}
		if row.Right < 0 || row.Right >= limit {
			return &MalformedTreeError{Parent: limit, Child: row.Right}
		}

		id := f.Merge(row.Left, row.Right)
		visit(nLeaves+i, id)
	}

	return nil
}

// CondensedTreeRow is one (parent, child) pair of a condensed tree. A
// parent may have more than two children across rows.
type CondensedTreeRow struct {
	Parent int
	Child  int
}

// CondensedTree is an n-ary condensed tree. Rows are grouped by parent and
// parents processed in descending id order, which guarantees every child is
// built before its parent.
type CondensedTree []CondensedTreeRow

func (ct CondensedTree) parents() []int {
	seen := make(map[int]bool, len(ct))
	var parents []int
	for _, row := range ct {
		if !seen[row.Parent] {
			seen[row.Parent] = true
			parents = append(parents, row.Parent)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(parents)))
	return parents
}

// NumNodes implements Builder.
func (ct CondensedTree) NumNodes(nLeaves int) int {
	return nLeaves + len(ct.parents())
}

// Build implements Builder. A parent's children are merged n-ary via
// MergeMany; every child referenced must already have a built node and
// parent ids must never reference ids below nLeaves.
func (ct CondensedTree) Build(f *group.Forest, nLeaves int, visit func(externalID, arenaID int)) error {
	parents := ct.parents()
	total := nLeaves + len(parents)

	children := make(map[int][]int, len(parents))
	for _, row := range ct {
		children[row.Parent] = append(children[row.Parent], row.Child)
	}

	// arenaOf maps external ids to arena ids; n-ary merges create chain
	// intermediates that occupy arena slots without external ids.
	arenaOf := make([]int, total)
	for i := 0; i < nLeaves; i++ {
		arenaOf[i] = i
	}
	for i := nLeaves; i < total; i++ {
		arenaOf[i] = -1
	}

	for _, parent := range parents {
		if parent < nLeaves || parent >= total {
			return &MalformedTreeError{Parent: parent, Child: children[parent][0]}
		}

		ids := make([]int, len(children[parent]))
		for i, child := range children[parent] {
			if child < 0 || child >= total || arenaOf[child] < 0 {
				return &MalformedTreeError{Parent: parent, Child: child}
			}
			ids[i] = arenaOf[child]
		}

		id := f.MergeMany(ids)
		arenaOf[parent] = id
		visit(parent, id)
	}

	return nil
}
