// Package export packages the MATCH bucket of a review session into a zip
// archive of <folder>/<label>.<ext> entries.
package export
