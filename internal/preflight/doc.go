// Package preflight provides readiness checks for the files and directories
// a sheetmatch run depends on.
//
// The match and review commands call RunAll before loading anything so a
// missing sheet or read-only output directory is reported up front instead of
// after the operator has finished reviewing a batch.
package preflight
