package review

import (
	"github.com/google/uuid"

	"sheetmatch/internal/reference"
)

// Image is one uploaded image: its original file name and the prepared
// payload that will be archived. The payload is treated as opaque bytes.
type Image struct {
	Name    string
	Payload []byte
}

// Item is the unit moved through classification and review. Items are created
// by a Session and mutated only through its commands.
type Item struct {
	id           uuid.UUID
	seq          int
	originalName string
	asset        []byte
	label        reference.Label
	score        float64
	bucket       Bucket
	owner        *Session
}

// ID returns the item's unique identifier.
func (i *Item) ID() string { return i.id.String() }

// Seq returns the 1-based position of the item in its batch.
func (i *Item) Seq() int { return i.seq }

// OriginalName returns the uploaded file name.
func (i *Item) OriginalName() string { return i.originalName }

// Label returns the assigned reference label, if any.
func (i *Item) Label() (reference.Label, bool) { return i.label, !i.label.IsZero() }

// Score returns the similarity recorded at classification time.
func (i *Item) Score() float64 { return i.score }

// Bucket returns the item's current review state.
func (i *Item) Bucket() Bucket { return i.bucket }

// View returns a snapshot of the item for rendering.
func (i *Item) View() ItemView {
	return ItemView{
		ID:           i.ID(),
		Seq:          i.seq,
		OriginalName: i.originalName,
		Label:        i.label.Text,
		Score:        i.score,
		Bucket:       i.bucket,
	}
}

// ItemView is a read-only snapshot of an item.
type ItemView struct {
	ID           string  `json:"id"`
	Seq          int     `json:"seq"`
	OriginalName string  `json:"original_name"`
	Label        string  `json:"label,omitempty"`
	Score        float64 `json:"score"`
	Bucket       Bucket  `json:"bucket"`
}

// Summary holds per-bucket counts.
type Summary struct {
	Match     int `json:"match"`
	Check     int `json:"check"`
	Duplicate int `json:"duplicate"`
	Removed   int `json:"removed"`
}

// ExportEntry is one MATCH item prepared for archiving.
type ExportEntry struct {
	Label        string
	OriginalName string
	Payload      []byte
}
