// Package matcher scores a candidate file name against every reference label
// and selects the best one.
//
// Scores use the token-sort ratio from textutil on normalized text, so word
// order and punctuation in file names do not matter. Selection is stable: on
// equal scores the label declared first in the reference table wins.
package matcher
