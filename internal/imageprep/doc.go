// Package imageprep re-encodes uploaded images into the uniform JPEG payloads
// that end up in the export archive.
package imageprep
