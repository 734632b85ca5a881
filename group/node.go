package group

import (
	"math"

	"github.com/hupe1980/ringscore/bitvec"
	"github.com/hupe1980/ringscore/similarity"
)

// none marks an absent child reference.
const none = -1

// Node is a group of users treated as one unit for scoring. Nodes are
// created by a Forest and addressed by integer id; child references are
// arena ids, never pointers.
//
// All statistic fields are finalized at construction and never mutated.
type Node struct {
	// Users are the member user ids, unique within the node. For a node
	// built from two children this is the exact concatenation of the
	// children's member lists.
	Users []int

	// Inter and Union are the intersection and union of the members'
	// product vectors.
	Inter *bitvec.Vector
	Union *bitvec.Vector

	// NUsers is len(Users).
	NUsers int

	// NTotalProducts is the popcount of Union.
	NTotalProducts int

	// NCommonProducts is the popcount of Inter.
	NCommonProducts int

	// NTotalReviews is the sum of the members' per-user review counts.
	NTotalReviews int

	child1 int
	child2 int
}

// IsLeafLike reports whether the node was built without merge history
// (a single-user leaf or a direct group from a user list). Such nodes have
// no children to recurse on, so their average Jaccard is computed by
// brute-force all-pairs enumeration.
func (n *Node) IsLeafLike() bool {
	return n.child1 == none
}

// Children returns the arena ids of the two nodes merged to form this node.
// ok is false for leaf-like nodes.
func (n *Node) Children() (child1, child2 int, ok bool) {
	return n.child1, n.child2, n.child1 != none
}

// ReviewTightness returns reviews per user-product pair, or 0 when the
// group touches no products.
func (n *Node) ReviewTightness() float64 {
	if n.NTotalProducts == 0 {
		return 0
	}
	return float64(n.NTotalReviews) / (float64(n.NUsers) * float64(n.NTotalProducts))
}

// ProductTightness returns the fraction of the group's touched products
// common to all members, or 0 when the group touches no products.
func (n *Node) ProductTightness() float64 {
	if n.NTotalProducts == 0 {
		return 0
	}
	return float64(n.NCommonProducts) / float64(n.NTotalProducts)
}

// Penalty is a sigmoid that suppresses the score of small groups:
// 1 / (1 + e^(−(β·(nUsers+nProducts) − 3))). Larger beta sharpens the
// penalty for larger groups too.
func Penalty(nUsers, nProducts int, beta float64) float64 {
	return 1 / (1 + math.Exp(-(beta*float64(nUsers+nProducts) - 3)))
}

// BruteForceAverageJaccard computes the mean pairwise Jaccard similarity
// over all ordered user pairs, self-pairs included, matching the recursive
// identity used by the Forest. A group with at most one user has average
// similarity 1 by definition.
func BruteForceAverageJaccard(users []int, simi similarity.UserSimilarity) float64 {
	n := len(users)
	if n <= 1 {
		return 1
	}

	var sum float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += simi.Jaccard(users[i], users[j])
		}
	}

	nn := float64(n)

	return (nn + 2*sum) / (nn * nn)
}
