// Package fieldfmt renders and parses the fixed-width field encodings used by
// CNAB shipping and return files.
//
// Numeric fields are zero-padded and overflow-checked, alphanumeric fields are
// stripped of diacritics, upper-cased, and space-padded, monetary values are
// encoded as scaled unsigned integers with no separator, and dates follow the
// per-bank day/month/year layouts.
//
// Every function is pure; failures surface as ErrOverflow or ErrFormat wrapped
// with field context so record builders can classify them with errors.Is.
package fieldfmt
