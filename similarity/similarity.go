// Package similarity defines the user-similarity collaborator consumed by
// the scoring engine, plus an in-memory implementation backed by per-user
// product bit vectors.
package similarity

import (
	"github.com/hupe1980/ringscore/bitvec"
)

// UserSimilarity supplies per-user product vectors and pairwise similarity
// statistics. Implementations must be safe for concurrent reads.
type UserSimilarity interface {
	// BitVector returns the product vector of a single user.
	BitVector(user int) *bitvec.Vector

	// BitVectors returns the product vectors of the given users, in order.
	BitVectors(users []int) []*bitvec.Vector

	// Jaccard returns the Jaccard similarity of two users' product sets,
	// in [0, 1]. Two users with empty product sets have similarity 0.
	Jaccard(i, j int) float64

	// SharedItemCount returns the number of products both users reviewed.
	SharedItemCount(i, j int) int
}

// Matrix is a UserSimilarity over an in-memory user×item matrix, one bit
// vector per user row.
type Matrix struct {
	vectors []*bitvec.Vector
}

// NewMatrix creates a Matrix from per-user product vectors. The slice is
// retained; rows must not be mutated afterwards.
func NewMatrix(vectors []*bitvec.Vector) *Matrix {
	return &Matrix{vectors: vectors}
}

// NumUsers returns the number of user rows.
func (m *Matrix) NumUsers() int {
	return len(m.vectors)
}

// BitVector returns the product vector of a single user.
func (m *Matrix) BitVector(user int) *bitvec.Vector {
	return m.vectors[user]
}

// BitVectors returns the product vectors of the given users, in order.
func (m *Matrix) BitVectors(users []int) []*bitvec.Vector {
	out := make([]*bitvec.Vector, len(users))
	for i, u := range users {
		out[i] = m.vectors[u]
	}
	return out
}

// Jaccard returns |i ∩ j| / |i ∪ j|, or 0 when the union is empty.
func (m *Matrix) Jaccard(i, j int) float64 {
	union := bitvec.OrCount(m.vectors[i], m.vectors[j])
	if union == 0 {
		return 0
	}
	return float64(bitvec.AndCount(m.vectors[i], m.vectors[j])) / float64(union)
}

// SharedItemCount returns the number of products both users reviewed.
func (m *Matrix) SharedItemCount(i, j int) int {
	return bitvec.AndCount(m.vectors[i], m.vectors[j])
}
