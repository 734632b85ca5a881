package group

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/ringscore/bitvec"
	"github.com/hupe1980/ringscore/similarity"
)

// Forest is an arena of group nodes addressed by integer id, in creation
// order. It owns the memoization table for the average-Jaccard statistic:
// a parallel value slice plus a computed-flag bitset, written at most once
// per node.
//
// A Forest is not safe for concurrent use; a scoring pass is a sequential
// bottom-up traversal.
type Forest struct {
	simi  similarity.UserSimilarity
	nodes []*Node
	avg   []float64
	done  *bitset.BitSet
}

// NewForest creates an empty Forest. capacity hints the total node count
// (leaves plus internal nodes) to avoid reallocation during a pass.
func NewForest(simi similarity.UserSimilarity, capacity int) *Forest {
	if capacity < 0 {
		capacity = 0
	}
	return &Forest{
		simi:  simi,
		nodes: make([]*Node, 0, capacity),
		avg:   make([]float64, 0, capacity),
		done:  bitset.New(uint(capacity)),
	}
}

// Len returns the number of nodes in the arena.
func (f *Forest) Len() int {
	return len(f.nodes)
}

// Node returns the node with the given arena id.
func (f *Forest) Node(id int) *Node {
	return f.nodes[id]
}

func (f *Forest) add(n *Node) int {
	f.nodes = append(f.nodes, n)
	f.avg = append(f.avg, 0)
	return len(f.nodes) - 1
}

// AddLeaf creates a single-user node from the user's product vector and
// returns its arena id.
func (f *Forest) AddLeaf(user int) int {
	v := f.simi.BitVector(user)

	return f.add(&Node{
		Users:           []int{user},
		Inter:           v,
		Union:           v,
		NUsers:          1,
		NTotalProducts:  v.Count(),
		NCommonProducts: v.Count(),
		NTotalReviews:   v.Count(),
		child1:          none,
		child2:          none,
	})
}

// AddGroup creates a node directly from a user list, folding bitwise
// AND/OR across each user's individual product vector. The users slice
// must be non-empty; it is retained by the node.
//
// Nodes built this way have no merge history, so their average Jaccard is
// later computed by brute-force all-pairs enumeration.
func (f *Forest) AddGroup(users []int) int {
	vecs := f.simi.BitVectors(users)

	inter := vecs[0]
	union := vecs[0]
	reviews := vecs[0].Count()
	for i := 1; i < len(vecs); i++ {
		inter = bitvec.And(inter, vecs[i])
		union = bitvec.Or(union, vecs[i])
		reviews += vecs[i].Count()
	}

	return f.add(&Node{
		Users:           users,
		Inter:           inter,
		Union:           union,
		NUsers:          len(users),
		NTotalProducts:  union.Count(),
		NCommonProducts: inter.Count(),
		NTotalReviews:   reviews,
		child1:          none,
		child2:          none,
	})
}

// Merge creates a node from two already-built children and returns its
// arena id. Statistics are derived in closed form from the children.
func (f *Forest) Merge(child1, child2 int) int {
	a, b := f.nodes[child1], f.nodes[child2]

	users := make([]int, 0, a.NUsers+b.NUsers)
	users = append(users, a.Users...)
	users = append(users, b.Users...)

	inter := bitvec.And(a.Inter, b.Inter)
	union := bitvec.Or(a.Union, b.Union)

	return f.add(&Node{
		Users:           users,
		Inter:           inter,
		Union:           union,
		NUsers:          a.NUsers + b.NUsers,
		NTotalProducts:  union.Count(),
		NCommonProducts: inter.Count(),
		NTotalReviews:   a.NTotalReviews + b.NTotalReviews,
		child1:          child1,
		child2:          child2,
	})
}

// MergeMany generalizes an n-ary merge into pairwise merges: the children
// list is halved recursively and the two halves merged, a balanced binary
// reduction. Average-Jaccard computation is deferred until requested.
// ids must be non-empty.
func (f *Forest) MergeMany(ids []int) int {
	switch len(ids) {
	case 1:
		return ids[0]
	case 2:
		return f.Merge(ids[0], ids[1])
	}

	mid := len(ids) / 2

	return f.Merge(f.MergeMany(ids[:mid]), f.MergeMany(ids[mid:]))
}

// MergeManyIterative is the eager variant of MergeMany: it repeatedly pops
// two children, merges them and computes the merged node's average Jaccard
// before appending it back to the list. Final statistics are identical to
// MergeMany up to floating-point association order in the cached averages.
func (f *Forest) MergeManyIterative(ids []int) int {
	queue := make([]int, len(ids))
	copy(queue, ids)

	for len(queue) > 1 {
		id := f.Merge(queue[0], queue[1])
		f.AverageJaccard(id)
		queue = append(queue[2:], id)
	}

	return queue[0]
}

// AverageJaccard returns the mean pairwise Jaccard similarity of the node's
// members, memoized per node. For a node with merge history it is derived
// from the children's averages plus the cross-child pair sum S:
//
//	(2·S + avg(c1)·n1² + avg(c2)·n2²) / n²
//
// so within-child pairs are never re-enumerated. A node with at most one
// user has average similarity 1.
func (f *Forest) AverageJaccard(id int) float64 {
	if f.done.Test(uint(id)) {
		return f.avg[id]
	}

	n := f.nodes[id]

	var v float64
	switch {
	case n.NUsers <= 1:
		v = 1
	case n.IsLeafLike():
		v = BruteForceAverageJaccard(n.Users, f.simi)
	default:
		a1 := f.AverageJaccard(n.child1)
		a2 := f.AverageJaccard(n.child2)

		c1, c2 := f.nodes[n.child1], f.nodes[n.child2]

		var cross float64
		for _, i := range c1.Users {
			for _, j := range c2.Users {
				cross += f.simi.Jaccard(i, j)
			}
		}

		n1 := float64(c1.NUsers)
		n2 := float64(c2.NUsers)
		nn := float64(n.NUsers)

		v = (2*cross + a1*n1*n1 + a2*n2*n2) / (nn * nn)
	}

	f.avg[id] = v
	f.done.Set(uint(id))

	return v
}
