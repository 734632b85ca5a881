// Package split partitions a large user population into bounded-size
// sub-problems and remaps per-subproblem clustering results back into the
// global index space.
//
// The population is represented as a row-per-user embedding matrix. A split
// is either random (shuffled contiguous chunks) or k-means based (with a
// random fallback when no attempt produces small enough clusters). Each
// split carries the original row indices of its members, from which index
// maps (local index → original index) are derived for remerging.
package split
