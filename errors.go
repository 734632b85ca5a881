package ringscore

import (
	"errors"
	"fmt"
)

// ErrNilDataset is returned when the Scorer is constructed without a
// dataset.
var ErrNilDataset = errors.New("dataset must not be nil")

// ErrUserOutOfRange indicates a review row or group member referencing a
// user id outside the dataset.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrUserOutOfRange struct {
	User  int
	Users int
	cause error
}

func (e *ErrUserOutOfRange) Error() string {
	return fmt.Sprintf("user %d out of range: dataset has %d users", e.User, e.Users)
}

func (e *ErrUserOutOfRange) Unwrap() error { return e.cause }

// ErrItemOutOfRange indicates a review row referencing an item id outside
// the dataset.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrItemOutOfRange struct {
	Item  int
	Items int
	cause error
}

func (e *ErrItemOutOfRange) Error() string {
	return fmt.Sprintf("item %d out of range: dataset has %d items", e.Item, e.Items)
}

func (e *ErrItemOutOfRange) Unwrap() error { return e.cause }
