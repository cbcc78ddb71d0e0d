package review

import (
	"errors"
	"fmt"

	"sheetmatch/internal/logging"
)

// Command is an operator action applied to a session with Session.Apply.
type Command interface {
	Op() Op
	// validate checks the command against the current state without mutating it.
	validate(s *Session) error
	// apply performs a validated command.
	apply(s *Session)
}

// Rebind binds Item to the reference label whose original text is Label.
// The bucket and score are unchanged.
type Rebind struct {
	Item  *Item
	Label string
}

// Confirm moves a CHECK item to MATCH, keeping its label and score.
type Confirm struct {
	Item *Item
}

// Remove evicts a MATCH or CHECK item. Removing an already removed item is a
// no-op.
type Remove struct {
	Item *Item
}

// BulkRemove removes every item in Items, or none of them when any item is
// rejected.
type BulkRemove struct {
	Items []*Item
}

// Apply validates cmd and, when valid, applies it. A rejected command leaves
// every item untouched.
func (s *Session) Apply(cmd Command) error {
	if cmd == nil {
		return errors.New("nil command")
	}
	if err := cmd.validate(s); err != nil {
		s.logger.Debug("command rejected",
			logging.String(logging.FieldOp, string(cmd.Op())),
			logging.Error(err),
		)
		return err
	}
	cmd.apply(s)
	summary := s.Summary()
	s.logger.Debug("command applied",
		logging.String(logging.FieldOp, string(cmd.Op())),
		logging.Int("match", summary.Match),
		logging.Int("check", summary.Check),
		logging.Int("removed", summary.Removed),
	)
	return nil
}

// Rebind applies a Rebind command.
func (s *Session) Rebind(item *Item, label string) error {
	return s.Apply(Rebind{Item: item, Label: label})
}

// Confirm applies a Confirm command.
func (s *Session) Confirm(item *Item) error {
	return s.Apply(Confirm{Item: item})
}

// Remove applies a Remove command.
func (s *Session) Remove(item *Item) error {
	return s.Apply(Remove{Item: item})
}

// BulkRemove applies a BulkRemove command.
func (s *Session) BulkRemove(items []*Item) error {
	return s.Apply(BulkRemove{Items: items})
}

func (Rebind) Op() Op { return OpRebind }

func (c Rebind) validate(s *Session) error {
	if err := checkItem(s, OpRebind, c.Item); err != nil {
		return err
	}
	if _, ok := transition(OpRebind, c.Item.bucket); !ok {
		return &TransitionError{Op: OpRebind, Seq: c.Item.seq, From: c.Item.bucket}
	}
	if _, ok := s.Index().Lookup(c.Label); !ok {
		return &LabelError{Label: c.Label}
	}
	return nil
}

func (c Rebind) apply(s *Session) {
	label, _ := s.Index().Lookup(c.Label)
	c.Item.label = label
	s.step(OpRebind, c.Item)
}

func (Confirm) Op() Op { return OpConfirm }

func (c Confirm) validate(s *Session) error {
	if err := checkItem(s, OpConfirm, c.Item); err != nil {
		return err
	}
	if _, ok := transition(OpConfirm, c.Item.bucket); !ok {
		return &TransitionError{Op: OpConfirm, Seq: c.Item.seq, From: c.Item.bucket}
	}
	if c.Item.label.IsZero() {
		return &TransitionError{Op: OpConfirm, Seq: c.Item.seq, From: c.Item.bucket, Reason: "no label assigned"}
	}
	return nil
}

func (c Confirm) apply(s *Session) {
	s.step(OpConfirm, c.Item)
}

func (Remove) Op() Op { return OpRemove }

func (c Remove) validate(s *Session) error {
	if err := checkItem(s, OpRemove, c.Item); err != nil {
		return err
	}
	if _, ok := transition(OpRemove, c.Item.bucket); !ok {
		return &TransitionError{Op: OpRemove, Seq: c.Item.seq, From: c.Item.bucket}
	}
	return nil
}

func (c Remove) apply(s *Session) {
	s.step(OpRemove, c.Item)
}

func (BulkRemove) Op() Op { return OpBulkRemove }

func (c BulkRemove) validate(s *Session) error {
	for _, item := range c.Items {
		if err := checkItem(s, OpBulkRemove, item); err != nil {
			return err
		}
		if _, ok := transition(OpBulkRemove, item.bucket); !ok {
			return &TransitionError{Op: OpBulkRemove, Seq: item.seq, From: item.bucket}
		}
	}
	return nil
}

func (c BulkRemove) apply(s *Session) {
	for _, item := range c.Items {
		s.step(OpBulkRemove, item)
	}
}

// step moves a validated item to the bucket the transition table assigns to
// op. Staying in the same bucket keeps the item's position.
func (s *Session) step(op Op, item *Item) {
	to, ok := transition(op, item.bucket)
	if !ok || to == item.bucket {
		return
	}
	s.detach(item)
	item.bucket = to
	switch to {
	case BucketMatch:
		s.match = append(s.match, item)
	case BucketCheck:
		s.check = append(s.check, item)
	case BucketDuplicate:
		s.duplicate = append(s.duplicate, item)
	case BucketRemoved:
		s.removed++
	}
}

func checkItem(s *Session, op Op, item *Item) error {
	if !s.owns(item) {
		return fmt.Errorf("%s: %w", op, ErrUnknownItem)
	}
	return nil
}
