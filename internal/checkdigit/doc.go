// Package checkdigit implements the weighted-digit verification arithmetic
// banks apply to agency, account, barcode, and "our number" fields.
//
// Mod10 and Mod11 are the shared building blocks; the barcode, our-number,
// and Asbace helpers apply each bank family's post-processing to the raw
// remainder. All functions are pure and operate on ASCII digit strings.
package checkdigit
