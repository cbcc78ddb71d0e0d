// Package logging assembles structured slog loggers and formatting helpers used
// across sheetmatch.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context helpers so review code can tag log lines with the batch
// they belong to. A no-op logger is provided for tests and wiring code that
// cannot fail.
package logging
