package bitvec

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Vector is a fixed-length bit vector over product indices.
// It wraps the official roaring implementation.
//
// Vectors handed to long-lived consumers (e.g. group nodes) must not be
// mutated afterwards; the combining operations And and Or allocate fresh
// vectors and never touch their operands.
type Vector struct {
	rb  *roaring.Bitmap
	len int
}

// New creates an empty Vector of the given length (number of products).
func New(length int) *Vector {
	return &Vector{
		rb:  roaring.New(),
		len: length,
	}
}

// FromIndices creates a Vector of the given length with the given bits set.
// Indices outside [0, length) are ignored.
func FromIndices(length int, indices []int) *Vector {
	v := New(length)
	for _, i := range indices {
		v.Set(i)
	}
	return v
}

// Set sets the bit at index i. Out-of-range indices are ignored.
func (v *Vector) Set(i int) {
	if i < 0 || i >= v.len {
		return
	}
	v.rb.Add(uint32(i))
}

// Test reports whether the bit at index i is set.
func (v *Vector) Test(i int) bool {
	if i < 0 || i >= v.len {
		return false
	}
	return v.rb.Contains(uint32(i))
}

// Count returns the number of set bits.
func (v *Vector) Count() int {
	return int(v.rb.GetCardinality())
}

// Len returns the length of the vector in bits.
func (v *Vector) Len() int {
	return v.len
}

// Clone returns a deep copy of the vector.
func (v *Vector) Clone() *Vector {
	return &Vector{
		rb:  v.rb.Clone(),
		len: v.len,
	}
}

// Equal reports whether two vectors have identical contents and length.
func (v *Vector) Equal(other *Vector) bool {
	return v.len == other.len && v.rb.Equals(other.rb)
}

// And returns the intersection of a and b as a new vector.
func And(a, b *Vector) *Vector {
	return &Vector{
		rb:  roaring.And(a.rb, b.rb),
		len: a.len,
	}
}

// Or returns the union of a and b as a new vector.
func Or(a, b *Vector) *Vector {
	return &Vector{
		rb:  roaring.Or(a.rb, b.rb),
		len: a.len,
	}
}

// AndCount returns the cardinality of the intersection of a and b without
// materializing it.
func AndCount(a, b *Vector) int {
	return int(a.rb.AndCardinality(b.rb))
}

// OrCount returns the cardinality of the union of a and b without
// materializing it.
func OrCount(a, b *Vector) int {
	return int(a.rb.OrCardinality(b.rb))
}
