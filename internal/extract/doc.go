// Package extract turns a parsed return file into domain-level findings: per
// title, a human-readable occurrence, the resolved assignment and title
// references, and a proposed state change for the persistence layer to apply.
//
// Extraction is best-effort throughout. Reference misses and unrecognized
// movement codes become warnings on the report, never failures, and the
// proposed changes are plain values; nothing here writes to storage.
package extract
