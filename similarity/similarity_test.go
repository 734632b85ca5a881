package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/ringscore/bitvec"
)

func newTestMatrix() *Matrix {
	return NewMatrix([]*bitvec.Vector{
		bitvec.FromIndices(8, []int{0, 1, 2}),
		bitvec.FromIndices(8, []int{1, 2, 3}),
		bitvec.FromIndices(8, []int{5}),
		bitvec.FromIndices(8, nil),
	})
}

func TestJaccard(t *testing.T) {
	m := newTestMatrix()

	tests := []struct {
		name     string
		i, j     int
		expected float64
	}{
		{"Overlapping", 0, 1, 0.5},
		{"Disjoint", 0, 2, 0},
		{"Identical", 1, 1, 1},
		{"OneEmpty", 0, 3, 0},
		{"BothEmpty", 3, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, m.Jaccard(tt.i, tt.j), 1e-12)
		})
	}
}

func TestSharedItemCount(t *testing.T) {
	m := newTestMatrix()

	assert.Equal(t, 2, m.SharedItemCount(0, 1))
	assert.Equal(t, 0, m.SharedItemCount(0, 2))
	assert.Equal(t, 3, m.SharedItemCount(0, 0))
}

func TestBitVectors(t *testing.T) {
	m := newTestMatrix()

	vecs := m.BitVectors([]int{2, 0})
	assert.Len(t, vecs, 2)
	assert.True(t, vecs[0].Test(5))
	assert.True(t, vecs[1].Test(0))
	assert.Equal(t, 4, m.NumUsers())
}
