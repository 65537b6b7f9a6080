// Package dialect models per-bank CNAB variation as data: record layouts and
// their legal-successor transitions, field masks, occurrence and movement
// code tables, charging types, and check-digit parameters.
//
// A Dialect is loaded from a TOML document (embedded built-ins plus optional
// on-disk overrides) and registered in a Registry keyed by bank code and
// layout. Encoder and parser receive the registry as an explicit dependency;
// there is no process-wide mutable configuration.
//
// Dialect documents usually omit record layouts, inheriting the standard
// FEBRABAN record set for their width; banks that deviate declare their own
// records and the loader takes them verbatim.
package dialect
