// Package group implements the tree-node abstraction for sets of users and
// the arena (Forest) that owns them.
//
// A Node carries incremental statistics: the intersection and union of its
// members' product vectors, user and review counts. Internal nodes are built
// in closed form from two already-finalized children, so no per-node rescan
// of user data is ever needed.
//
// The expensive derived statistic, the average pairwise Jaccard similarity,
// is computed lazily by the Forest through a recursive identity over the
// children and memoized write-once in an explicit table.
package group
