// Package retorno parses CNAB return files: the bank's fixed-width
// acknowledgement and settlement notices for previously shipped titles.
//
// Parsing measures the longest line to pick the 240- or 400-column layout,
// reads the bank code at the layout's fixed offset to select a dialect, and
// then walks a record-type state machine: each matched record narrows the set
// of record types legal on the next line, which disambiguates structurally
// similar fixed-width rows. Lines matching none of the legal patterns are
// recorded as per-line errors and parsing continues.
//
// The output is a best-effort hierarchical parse tree (header, ordered lots
// of immutable registries, trailer) plus a structured issue list; trailer
// count mismatches surface as warnings, never aborts.
package retorno
