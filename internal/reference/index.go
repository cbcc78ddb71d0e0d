// Package reference holds the ordered set of reference labels a batch of
// images is reconciled against.
//
// Labels keep their original text (the identity used for lookup and export)
// alongside the normalized form used for matching. Declaration order is
// preserved because it decides ties during matching.
package reference

import (
	"strings"

	"sheetmatch/internal/textutil"
)

// Label is one reference label taken from the reference table.
type Label struct {
	Text       string
	Normalized string
	Position   int
}

// IsZero reports whether the label is unset.
func (l Label) IsZero() bool {
	return l.Text == ""
}

// Index is an immutable, ordered collection of reference labels.
type Index struct {
	labels []Label
	byText map[string]int
}

// NewIndex builds an index from labels in their declared order. Labels are
// trimmed and blank entries are dropped. When the same original text appears
// more than once only the first occurrence is kept.
func NewIndex(labels []string) *Index {
	idx := &Index{
		labels: make([]Label, 0, len(labels)),
		byText: make(map[string]int, len(labels)),
	}
	for _, raw := range labels {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		if _, exists := idx.byText[text]; exists {
			continue
		}
		position := len(idx.labels)
		idx.byText[text] = position
		idx.labels = append(idx.labels, Label{
			Text:       text,
			Normalized: textutil.Normalize(text),
			Position:   position,
		})
	}
	return idx
}

// Lookup returns the label whose original text equals text.
func (i *Index) Lookup(text string) (Label, bool) {
	if i == nil {
		return Label{}, false
	}
	position, ok := i.byText[strings.TrimSpace(text)]
	if !ok {
		return Label{}, false
	}
	return i.labels[position], true
}

// First returns the first declared label.
func (i *Index) First() (Label, bool) {
	if i.Len() == 0 {
		return Label{}, false
	}
	return i.labels[0], true
}

// Labels returns a copy of the labels in declared order.
func (i *Index) Labels() []Label {
	if i == nil {
		return nil
	}
	out := make([]Label, len(i.labels))
	copy(out, i.labels)
	return out
}

// Len returns the number of labels.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.labels)
}

// Filter returns labels whose normalized text contains the normalized query,
// in declared order. An empty query returns every label.
func (i *Index) Filter(query string) []Label {
	needle := textutil.Normalize(query)
	if needle == "" || i == nil {
		return i.Labels()
	}
	var out []Label
	for _, label := range i.labels {
		if strings.Contains(label.Normalized, needle) {
			out = append(out, label)
		}
	}
	return out
}
