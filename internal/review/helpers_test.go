package review_test

import (
	"testing"

	"sheetmatch/internal/logging"
	"sheetmatch/internal/matcher"
	"sheetmatch/internal/reference"
	"sheetmatch/internal/review"
)

func newSession(t *testing.T, labels []string, policy review.Policy) *review.Session {
	t.Helper()
	s, err := review.NewSession(matcher.New(reference.NewIndex(labels)), policy, logging.NewNop())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func images(names ...string) []review.Image {
	out := make([]review.Image, 0, len(names))
	for _, name := range names {
		out = append(out, review.Image{Name: name, Payload: []byte("payload:" + name)})
	}
	return out
}

func bucketsOf(items []*review.Item) []review.Bucket {
	out := make([]review.Bucket, 0, len(items))
	for _, item := range items {
		out = append(out, item.Bucket())
	}
	return out
}

func mustItem(t *testing.T, s *review.Session, seq int) *review.Item {
	t.Helper()
	item, ok := s.Item(seq)
	if !ok {
		t.Fatalf("item %d not found", seq)
	}
	return item
}
