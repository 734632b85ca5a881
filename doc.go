// Package ringscore assigns fraud-likelihood (anomaly) scores to groups of
// users in a review dataset, given a hierarchy of user groupings produced by
// an external clustering algorithm.
//
// Given a tree whose leaves are individual users and whose internal nodes
// are progressively larger groups, a Scorer computes for every node a
// compactness score measuring how suspiciously tight the group's reviewing
// behavior is. Group statistics are derived incrementally from children, so
// expensive pairwise statistics are never recomputed from scratch.
//
// # Quick start
//
//	scorer, _ := ringscore.New(dataset)
//
//	// Score an agglomerative clustering result:
//	nodes, scores, _ := scorer.HierarchicalScores(linkage, nil)
//
//	// Or a density-based condensed tree:
//	nodes, scores, _ := scorer.CondensedTreeScores(condensedTree)
//
// Scores are indexed identically to the input tree's node ids: leaves first,
// internal nodes in the encoding's own order.
//
// # Compactness
//
// A group's compactness is the product of review tightness (reviews per
// user-product pair), product tightness (fraction of touched products common
// to all members), neighbor tightness (average pairwise Jaccard similarity)
// and, optionally, a sigmoid penalty suppressing small groups. With review
// metadata enabled, compactness is combined with the group's mean rating
// deviation and burstness via a weighted geometric mean.
//
// # Scaling out
//
// When the user population is too large for a single clustering pass, the
// split package partitions it into bounded-size sub-problems and remerges
// per-split results into the global index space.
package ringscore
