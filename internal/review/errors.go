package review

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports thresholds outside [0,100].
	ErrConfiguration = errors.New("configuration error")
	// ErrUnknownLabel reports a rebind to a label missing from the reference index.
	ErrUnknownLabel = errors.New("unknown label")
	// ErrInvalidTransition reports a command that is not allowed in the item's bucket.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrUnknownItem reports an item that was never created by the session.
	ErrUnknownItem = errors.New("unknown item")
)

// TransitionError describes a rejected command.
type TransitionError struct {
	Op     Op
	Seq    int
	From   Bucket
	Reason string
}

func (e *TransitionError) Error() string {
	msg := fmt.Sprintf("%s item %d: %s from %s", e.Op, e.Seq, ErrInvalidTransition, e.From)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// LabelError describes a rebind to a label that is not in the reference index.
type LabelError struct {
	Label string
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnknownLabel, e.Label)
}

func (e *LabelError) Unwrap() error {
	return ErrUnknownLabel
}
