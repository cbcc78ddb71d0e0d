// Package review classifies uploaded images against a reference index and
// owns the operator review state for one batch.
//
// A Session folds images in supply order through duplicate detection,
// matching, and classification into three ordered buckets (MATCH, CHECK,
// DUPLICATE). Operators then correct the result by applying commands
// (Rebind, Confirm, Remove, BulkRemove); each command either applies fully or
// leaves the session untouched, and views are re-derived afterwards.
//
// The session is single-writer and is not safe for concurrent use. Item
// identity is the *Item pointer handed out by the session that created it.
package review
