package review

import (
	"math"

	"github.com/google/uuid"

	"sheetmatch/internal/matcher"
	"sheetmatch/internal/reference"
)

// MatchResult is the matcher outcome handed to Classify. Found is false only
// when the reference index is empty; Fallback is the first declared label, if
// one exists.
type MatchResult struct {
	Match    matcher.Match
	Found    bool
	Fallback reference.Label
}

// Classify assigns a bucket to image:
//  1. duplicates go to DUPLICATE with no label and score 0
//  2. without a match the item goes to CHECK with the fallback label and score 0
//  3. a score at or above the match threshold goes to MATCH
//  4. anything else goes to CHECK
//
// The returned item is not yet owned by a session.
func Classify(image Image, duplicate bool, result MatchResult, policy Policy) *Item {
	item := &Item{
		id:           uuid.New(),
		originalName: image.Name,
		asset:        image.Payload,
	}
	switch {
	case duplicate:
		item.bucket = BucketDuplicate
	case !result.Found:
		item.bucket = BucketCheck
		item.label = result.Fallback
	case result.Match.Score >= policy.MatchThreshold:
		item.bucket = BucketMatch
		item.label = result.Match.Label
		item.score = roundScore(result.Match.Score)
	default:
		item.bucket = BucketCheck
		item.label = result.Match.Label
		item.score = roundScore(result.Match.Score)
	}
	return item
}

func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}
