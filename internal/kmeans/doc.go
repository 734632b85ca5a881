// Package kmeans implements k-means clustering over embedding matrices.
//
// Used internally by the split package to partition large user populations
// into bounded-size sub-problems.
package kmeans
