// Package shipping encodes CNAB shipping files: ordered fixed-width records
// carrying payment-collection instructions from an assignor to its bank.
//
// An Encoder walks the file state machine (header, repeating lots of detail
// segments, trailers), enforces the per-lot and per-file record ceilings, and
// renders each record through the dialect's formatting tables and mask
// overlays. Output is lazy and idempotent: the first call closes the file,
// later calls return the same bytes.
//
// Encoding either yields a complete, fully closed file or fails with an
// error classified by fieldfmt.ErrOverflow or fieldfmt.ErrFormat; partial
// files are never exposed.
package shipping
