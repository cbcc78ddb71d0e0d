// Package journal keeps an append-only sqlite audit of a review batch.
//
// Every classification result and every operator command applied to a
// session is recorded with its own uuid, so an operator can see how the
// MATCH set they exported came to be. The journal is write-only from the
// review flow's point of view: it is never replayed to rebuild a session.
package journal
