// Package bitvec provides the fixed-length bit vector used to track which
// products a group of users has reviewed.
//
// A Vector wraps a 32-bit Roaring Bitmap. Indices correspond to product ids
// in [0, Len). Vectors combine via And (intersection) and Or (union); Count
// returns the population count.
package bitvec
