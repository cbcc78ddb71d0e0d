package review

import "strings"

// Bucket is the review state of an item.
type Bucket int

const (
	BucketMatch Bucket = iota + 1
	BucketCheck
	BucketDuplicate
	BucketRemoved
)

// String returns the display name of the bucket.
func (b Bucket) String() string {
	switch b {
	case BucketMatch:
		return "MATCH"
	case BucketCheck:
		return "CHECK"
	case BucketDuplicate:
		return "DUPLICATE"
	case BucketRemoved:
		return "REMOVED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the bucket by name.
func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// ParseBucket converts a bucket name (case-insensitive) into a Bucket.
func ParseBucket(value string) (Bucket, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "MATCH":
		return BucketMatch, true
	case "CHECK":
		return BucketCheck, true
	case "DUPLICATE":
		return BucketDuplicate, true
	case "REMOVED":
		return BucketRemoved, true
	default:
		return 0, false
	}
}

// Op names an operator command.
type Op string

const (
	OpRebind     Op = "rebind"
	OpConfirm    Op = "confirm"
	OpRemove     Op = "remove"
	OpBulkRemove Op = "bulk_remove"
)

// transition resolves the bucket an item moves to when op is applied in
// bucket from. ok is false when the transition is not allowed. Removing an
// already removed item is allowed and leaves it in BucketRemoved.
func transition(op Op, from Bucket) (to Bucket, ok bool) {
	switch op {
	case OpRebind:
		switch from {
		case BucketMatch, BucketCheck:
			return from, true
		case BucketDuplicate, BucketRemoved:
			return from, false
		}
	case OpConfirm:
		switch from {
		case BucketCheck:
			return BucketMatch, true
		case BucketMatch, BucketDuplicate, BucketRemoved:
			return from, false
		}
	case OpRemove, OpBulkRemove:
		switch from {
		case BucketMatch, BucketCheck, BucketRemoved:
			return BucketRemoved, true
		case BucketDuplicate:
			return from, false
		}
	}
	return from, false
}
