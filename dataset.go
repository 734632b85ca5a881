package ringscore

import (
	"time"

	"github.com/hupe1980/ringscore/bitvec"
)

// Dataset supplies the review dataset's shape and per-user product vectors.
// It is a consumed collaborator; loading and parsing live outside this
// module.
type Dataset interface {
	// NumUsers returns the number of users.
	NumUsers() int

	// NumItems returns the number of products.
	NumItems() int

	// UserVector returns the product vector of a user: bit i set means the
	// user has at least one review of product i. The returned vector must
	// not be mutated.
	UserVector(user int) *bitvec.Vector
}

// Review is one row of the dataset's review metadata table.
type Review struct {
	Item   int
	User   int
	Rating float64
	Date   time.Time
}
