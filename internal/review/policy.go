package review

import "fmt"

const (
	// DefaultMatchThreshold is the inclusive score at which an item lands in MATCH.
	DefaultMatchThreshold = 75.0
	// DefaultReviewThreshold is accepted and validated but does not gate any
	// classification yet.
	DefaultReviewThreshold = 65.0
)

// Policy centralizes classification thresholds.
type Policy struct {
	MatchThreshold float64
	// ReviewThreshold is reserved for a future "reject below" rule and is
	// currently inert.
	ReviewThreshold float64
}

// DefaultPolicy returns the thresholds used when none are configured.
func DefaultPolicy() Policy {
	return Policy{
		MatchThreshold:  DefaultMatchThreshold,
		ReviewThreshold: DefaultReviewThreshold,
	}
}

// Validate rejects thresholds outside [0,100]. Values are never clamped.
func (p Policy) Validate() error {
	if err := checkThreshold("match_threshold", p.MatchThreshold); err != nil {
		return err
	}
	return checkThreshold("review_threshold", p.ReviewThreshold)
}

func checkThreshold(name string, value float64) error {
	// NaN fails both comparisons.
	if !(value >= 0 && value <= 100) {
		return fmt.Errorf("%w: %s must be between 0 and 100, got %v", ErrConfiguration, name, value)
	}
	return nil
}
