// Package store is the SQLite persistence collaborator behind the CLI. It
// feeds the shipping encoder with open titles, allocates the assignor-scoped
// file counter under a process lock, records shipping batches, and applies
// the extractor's proposed changes transactionally.
//
// The codec packages never import this package; it consumes their input and
// output contracts from the outside.
package store
