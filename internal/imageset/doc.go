// Package imageset expands command-line image arguments into the ordered
// batch handed to a review session.
package imageset
