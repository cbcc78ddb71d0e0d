// Package sheet reads reference sheets into ordered label lists.
//
// CSV and TSV sheets are reduced to one column of label text; rows whose
// "skip" column is already filled are treated as assigned and left out.
// Plain text sheets hold one label per line.
package sheet
