package review

import (
	"log/slog"

	"github.com/google/uuid"

	"sheetmatch/internal/logging"
	"sheetmatch/internal/matcher"
	"sheetmatch/internal/reference"
)

// Session owns the review state of one uploaded batch.
type Session struct {
	id      uuid.UUID
	matcher *matcher.Matcher
	policy  Policy
	logger  *slog.Logger

	match     []*Item
	check     []*Item
	duplicate []*Item
	removed   int

	// items holds every item of the batch in supply order, removed ones included.
	items []*Item
	seen  map[string]struct{}
}

// NewSession creates an empty session. The policy is validated here so a bad
// threshold is rejected before any image is classified.
func NewSession(m *matcher.Matcher, policy Policy, logger *slog.Logger) (*Session, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		matcher: m,
		policy:  policy,
		logger:  logging.NewComponentLogger(logger, "review"),
	}
	s.Reset()
	return s, nil
}

// Reset discards all items and seen identities and starts a new batch. Items
// of the previous batch are no longer accepted by commands.
func (s *Session) Reset() {
	for _, item := range s.items {
		item.owner = nil
	}
	s.id = uuid.New()
	s.match = nil
	s.check = nil
	s.duplicate = nil
	s.removed = 0
	s.items = nil
	s.seen = make(map[string]struct{})
}

// ID returns the batch identifier.
func (s *Session) ID() string { return s.id.String() }

// Policy returns the thresholds in effect.
func (s *Session) Policy() Policy { return s.policy }

// Index returns the reference index items are bound against.
func (s *Session) Index() *reference.Index { return s.matcher.Index() }

// Matcher returns the matcher used for classification.
func (s *Session) Matcher() *matcher.Matcher { return s.matcher }

// Ingest classifies images strictly in the order given. The first image to
// present a base identity is matched; every later image with the same
// identity is a duplicate no matter how well it would match.
func (s *Session) Ingest(images []Image) []*Item {
	if s.Index().Len() == 0 && len(images) > 0 {
		logging.WarnWithContext(s.logger, "reference table is empty", "reference_empty",
			logging.Int("images", len(images)),
			logging.String(logging.FieldImpact, "every image will need manual review with score 0"),
			logging.String(logging.FieldErrorHint, "check the label column of the reference sheet"),
		)
	}
	added := make([]*Item, 0, len(images))
	for _, image := range images {
		added = append(added, s.add(image))
	}
	summary := s.Summary()
	s.logger.Info("batch classified",
		logging.String(logging.FieldBatchID, s.ID()),
		logging.Int("images", len(images)),
		logging.Int("match", summary.Match),
		logging.Int("check", summary.Check),
		logging.Int("duplicate", summary.Duplicate),
		logging.Float64("match_threshold", s.policy.MatchThreshold),
		logging.Float64("review_threshold", s.policy.ReviewThreshold),
	)
	return added
}

func (s *Session) add(image Image) *Item {
	var item *Item
	if IsDuplicate(image.Name, s.seen) {
		item = Classify(image, true, MatchResult{}, s.policy)
	} else {
		registerIdentity(image.Name, s.seen)
		match, found := s.matcher.BestMatch(image.Name)
		fallback, _ := s.Index().First()
		item = Classify(image, false, MatchResult{Match: match, Found: found, Fallback: fallback}, s.policy)
	}

	item.owner = s
	item.seq = len(s.items) + 1
	s.items = append(s.items, item)
	switch item.bucket {
	case BucketMatch:
		s.match = append(s.match, item)
	case BucketCheck:
		s.check = append(s.check, item)
	case BucketDuplicate:
		s.duplicate = append(s.duplicate, item)
	case BucketRemoved:
	}

	s.logger.Debug("image classified",
		logging.Int(logging.FieldItemSeq, item.seq),
		logging.String("original_name", item.originalName),
		logging.String(logging.FieldBucket, item.bucket.String()),
		logging.String(logging.FieldLabel, item.label.Text),
		logging.Float64(logging.FieldScore, item.score),
	)
	return item
}

// Item returns the item with the given batch position, including removed items.
func (s *Session) Item(seq int) (*Item, bool) {
	if seq < 1 || seq > len(s.items) {
		return nil, false
	}
	return s.items[seq-1], true
}

// Items returns a copy of the ordered items currently in bucket. For
// BucketRemoved the removed items are returned in supply order.
func (s *Session) Items(bucket Bucket) []*Item {
	var src []*Item
	switch bucket {
	case BucketMatch:
		src = s.match
	case BucketCheck:
		src = s.check
	case BucketDuplicate:
		src = s.duplicate
	case BucketRemoved:
		for _, item := range s.items {
			if item.bucket == BucketRemoved {
				src = append(src, item)
			}
		}
	}
	out := make([]*Item, len(src))
	copy(out, src)
	return out
}

// View returns snapshots of the items currently in bucket.
func (s *Session) View(bucket Bucket) []ItemView {
	items := s.Items(bucket)
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, item.View())
	}
	return views
}

// Summary returns the per-bucket counts.
func (s *Session) Summary() Summary {
	return Summary{
		Match:     len(s.match),
		Check:     len(s.check),
		Duplicate: len(s.duplicate),
		Removed:   s.removed,
	}
}

// ExportEntries returns the MATCH bucket in order as archive entries. The
// session is not modified.
func (s *Session) ExportEntries() []ExportEntry {
	entries := make([]ExportEntry, 0, len(s.match))
	for _, item := range s.match {
		entries = append(entries, ExportEntry{
			Label:        item.label.Text,
			OriginalName: item.originalName,
			Payload:      item.asset,
		})
	}
	return entries
}

func (s *Session) owns(item *Item) bool {
	return item != nil && item.owner == s
}

func (s *Session) detach(item *Item) {
	switch item.bucket {
	case BucketMatch:
		s.match = without(s.match, item)
	case BucketCheck:
		s.check = without(s.check, item)
	case BucketDuplicate:
		s.duplicate = without(s.duplicate, item)
	case BucketRemoved:
	}
}

func without(items []*Item, target *Item) []*Item {
	for i, item := range items {
		if item == target {
			out := make([]*Item, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...)
		}
	}
	return items
}
