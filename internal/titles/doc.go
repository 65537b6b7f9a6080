// Package titles defines the in-memory billing domain model the codec
// transforms: titles, assignors, payers, and the assignor-bank assignments
// that carry covenant and account data.
//
// The codec packages consume these records as plain values; loading and
// persisting them is the store's concern.
package titles
