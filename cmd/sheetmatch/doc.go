// Package main hosts the sheetmatch CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, then hands each
// subcommand a ready batch: reference sheet parsed, images loaded and
// classified, journal opened, output directory locked. "match" prints the
// result (optionally exporting the archive) and exits; "review" keeps the
// batch open in a line-oriented shell where the operator rebinds, confirms
// and removes items before exporting.
package main
