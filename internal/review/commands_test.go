package review_test

import (
	"errors"
	"reflect"
	"testing"

	"sheetmatch/internal/review"
)

// fixture: 1 lamp.jpg MATCH, 2 desk.jpg MATCH, 3 xyz.jpg CHECK, 4 lamp_2.jpg DUPLICATE.
func reviewFixture(t *testing.T) *review.Session {
	t.Helper()
	s := newSession(t, []string{"Lamp", "Desk", "Chair"}, review.DefaultPolicy())
	s.Ingest(images("lamp.jpg", "desk.jpg", "xyz.jpg", "lamp_2.jpg"))
	return s
}

func TestConfirmMovesCheckToMatch(t *testing.T) {
	s := reviewFixture(t)
	item := mustItem(t, s, 3)
	label, _ := item.Label()
	score := item.Score()

	if err := s.Confirm(item); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if item.Bucket() != review.BucketMatch {
		t.Fatalf("bucket = %s, want MATCH", item.Bucket())
	}
	if got, _ := item.Label(); got != label || item.Score() != score {
		t.Fatalf("confirm changed label/score: %v %v", got, item.Score())
	}
	matches := s.View(review.BucketMatch)
	if len(matches) != 3 || matches[2].Seq != 3 {
		t.Fatalf("confirmed item should be appended to MATCH: %+v", matches)
	}
	if len(s.View(review.BucketCheck)) != 0 {
		t.Fatal("CHECK should be empty")
	}
}

func TestConfirmRejectsOtherBuckets(t *testing.T) {
	s := reviewFixture(t)
	for _, seq := range []int{1, 4} {
		item := mustItem(t, s, seq)
		before := item.Bucket()
		err := s.Confirm(item)
		if !errors.Is(err, review.ErrInvalidTransition) {
			t.Fatalf("Confirm(%d) error = %v, want ErrInvalidTransition", seq, err)
		}
		var terr *review.TransitionError
		if !errors.As(err, &terr) || terr.From != before || terr.Op != review.OpConfirm {
			t.Fatalf("unexpected error detail: %#v", err)
		}
		if item.Bucket() != before {
			t.Fatalf("bucket changed to %s", item.Bucket())
		}
	}
}

func TestConfirmRequiresLabel(t *testing.T) {
	s := newSession(t, nil, review.DefaultPolicy())
	items := s.Ingest(images("orphan.jpg"))
	if err := s.Confirm(items[0]); !errors.Is(err, review.ErrInvalidTransition) {
		t.Fatalf("Confirm without label error = %v", err)
	}
	if items[0].Bucket() != review.BucketCheck {
		t.Fatalf("bucket = %s, want CHECK", items[0].Bucket())
	}
}

func TestRebind(t *testing.T) {
	s := reviewFixture(t)
	item := mustItem(t, s, 1)
	score := item.Score()

	if err := s.Rebind(item, "Chair"); err != nil {
		t.Fatalf("Rebind: %v", err)
	}
	if label, _ := item.Label(); label.Text != "Chair" {
		t.Fatalf("label = %q, want Chair", label.Text)
	}
	if item.Bucket() != review.BucketMatch || item.Score() != score {
		t.Fatal("rebind must keep bucket and score")
	}

	check := mustItem(t, s, 3)
	if err := s.Rebind(check, "Desk"); err != nil {
		t.Fatalf("Rebind CHECK item: %v", err)
	}
	if check.Bucket() != review.BucketCheck {
		t.Fatalf("bucket = %s, want CHECK", check.Bucket())
	}
}

func TestRebindUnknownLabel(t *testing.T) {
	s := reviewFixture(t)
	item := mustItem(t, s, 1)
	before := s.View(review.BucketMatch)

	err := s.Rebind(item, "Sofa")
	if !errors.Is(err, review.ErrUnknownLabel) {
		t.Fatalf("error = %v, want ErrUnknownLabel", err)
	}
	var lerr *review.LabelError
	if !errors.As(err, &lerr) || lerr.Label != "Sofa" {
		t.Fatalf("unexpected error detail: %#v", err)
	}
	if after := s.View(review.BucketMatch); !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed: %+v", after)
	}
}

func TestRebindRejectsDuplicateAndRemoved(t *testing.T) {
	s := reviewFixture(t)
	if err := s.Rebind(mustItem(t, s, 4), "Desk"); !errors.Is(err, review.ErrInvalidTransition) {
		t.Fatalf("rebind DUPLICATE error = %v", err)
	}
	removed := mustItem(t, s, 2)
	if err := s.Remove(removed); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s.Rebind(removed, "Lamp"); !errors.Is(err, review.ErrInvalidTransition) {
		t.Fatalf("rebind REMOVED error = %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := reviewFixture(t)
	item := mustItem(t, s, 1)

	if err := s.Remove(item); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s.Remove(item); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if item.Bucket() != review.BucketRemoved {
		t.Fatalf("bucket = %s, want REMOVED", item.Bucket())
	}
	if got := s.Summary(); got != (review.Summary{Match: 1, Check: 1, Duplicate: 1, Removed: 1}) {
		t.Fatalf("Summary() = %+v", got)
	}
	if removed := s.Items(review.BucketRemoved); len(removed) != 1 || removed[0] != item {
		t.Fatalf("removed items = %v", removed)
	}
	for _, entry := range s.ExportEntries() {
		if entry.OriginalName == "lamp.jpg" {
			t.Fatal("removed item must not be exported")
		}
	}
}

func TestRemoveRejectsDuplicate(t *testing.T) {
	s := reviewFixture(t)
	if err := s.Remove(mustItem(t, s, 4)); !errors.Is(err, review.ErrInvalidTransition) {
		t.Fatalf("error = %v, want ErrInvalidTransition", err)
	}
	if s.Summary().Duplicate != 1 {
		t.Fatal("duplicate should stay in DUPLICATE")
	}
}

func TestBulkRemove(t *testing.T) {
	s := reviewFixture(t)
	if err := s.BulkRemove([]*review.Item{mustItem(t, s, 1), mustItem(t, s, 3)}); err != nil {
		t.Fatalf("BulkRemove: %v", err)
	}
	if got := s.Summary(); got != (review.Summary{Match: 1, Check: 0, Duplicate: 1, Removed: 2}) {
		t.Fatalf("Summary() = %+v", got)
	}
	if err := s.BulkRemove(nil); err != nil {
		t.Fatalf("empty BulkRemove: %v", err)
	}
}

func TestBulkRemoveIsAtomic(t *testing.T) {
	s := reviewFixture(t)
	before := s.Summary()

	err := s.BulkRemove([]*review.Item{mustItem(t, s, 1), mustItem(t, s, 2), mustItem(t, s, 4)})
	if !errors.Is(err, review.ErrInvalidTransition) {
		t.Fatalf("error = %v, want ErrInvalidTransition", err)
	}
	if after := s.Summary(); after != before {
		t.Fatalf("partial removal: %+v -> %+v", before, after)
	}
	if mustItem(t, s, 1).Bucket() != review.BucketMatch {
		t.Fatal("item 1 must still be in MATCH")
	}
}

func TestCommandsRejectForeignItems(t *testing.T) {
	s := reviewFixture(t)
	other := reviewFixture(t)
	foreign := mustItem(t, other, 1)

	commands := []review.Command{
		review.Rebind{Item: foreign, Label: "Desk"},
		review.Confirm{Item: foreign},
		review.Remove{Item: foreign},
		review.BulkRemove{Items: []*review.Item{mustItem(t, s, 1), foreign}},
		review.Remove{Item: nil},
	}
	for _, cmd := range commands {
		if err := s.Apply(cmd); !errors.Is(err, review.ErrUnknownItem) {
			t.Errorf("%s error = %v, want ErrUnknownItem", cmd.Op(), err)
		}
	}
	if s.Summary().Removed != 0 || foreign.Bucket() != review.BucketMatch {
		t.Fatal("foreign commands must not change either session")
	}
}

func TestResetOrphansItems(t *testing.T) {
	s := reviewFixture(t)
	item := mustItem(t, s, 1)
	s.Reset()
	if err := s.Remove(item); !errors.Is(err, review.ErrUnknownItem) {
		t.Fatalf("error = %v, want ErrUnknownItem", err)
	}
}
