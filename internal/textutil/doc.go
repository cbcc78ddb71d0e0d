// Package textutil provides the text processing used to reconcile uploaded
// file names against reference labels.
//
// The primary use cases are:
//   - Normalizing labels and file names into a canonical comparison string
//   - Deriving the base identity of a file name for duplicate detection
//   - Scoring two normalized strings with an order-insensitive similarity ratio
//   - Sanitizing archive file names for safe filesystem use
//
// Normalized text only ever contains lowercase ASCII letters, digits, and
// single spaces, which makes Normalize idempotent.
package textutil
