package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"sheetmatch/internal/review"
)

// Kind classifies a journal entry.
type Kind string

const (
	KindClassified Kind = "classified"
	KindCommand    Kind = "command"
	KindExport     Kind = "export"
)

// Entry is one journal row. Item fields are empty for batch-level entries.
type Entry struct {
	ID           string    `json:"id"`
	BatchID      string    `json:"batch_id"`
	Position     int       `json:"position"`
	Kind         Kind      `json:"kind"`
	Op           string    `json:"op,omitempty"`
	ItemSeq      int       `json:"item_seq,omitempty"`
	OriginalName string    `json:"original_name,omitempty"`
	Label        string    `json:"label,omitempty"`
	Bucket       string    `json:"bucket,omitempty"`
	Score        float64   `json:"score"`
	Detail       string    `json:"detail,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

const entryColumns = "id, batch_id, position, kind, op, item_seq, original_name, label, bucket, score, detail, created_at"

// RecordClassified appends one entry per classified item, in supply order.
func (s *Store) RecordClassified(ctx context.Context, batchID string, views []review.ItemView) error {
	entries := make([]Entry, 0, len(views))
	for _, view := range views {
		entries = append(entries, itemEntry(batchID, KindClassified, "", view, ""))
	}
	return s.append(ctx, entries)
}

// RecordCommand appends one entry per item touched by an applied command,
// using the item state after the command.
func (s *Store) RecordCommand(ctx context.Context, batchID string, op review.Op, views []review.ItemView) error {
	entries := make([]Entry, 0, len(views))
	for _, view := range views {
		entries = append(entries, itemEntry(batchID, KindCommand, string(op), view, ""))
	}
	return s.append(ctx, entries)
}

// RecordExport appends a batch-level entry describing a written archive.
func (s *Store) RecordExport(ctx context.Context, batchID, archivePath string, entries int) error {
	return s.append(ctx, []Entry{{
		BatchID: batchID,
		Kind:    KindExport,
		Op:      "export",
		Detail:  fmt.Sprintf("%d entries -> %s", entries, archivePath),
	}})
}

// List returns the entries of batchID in append order.
func (s *Store) List(ctx context.Context, batchID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM journal_entries WHERE batch_id = ? ORDER BY position`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}

func itemEntry(batchID string, kind Kind, op string, view review.ItemView, detail string) Entry {
	return Entry{
		BatchID:      batchID,
		Kind:         kind,
		Op:           op,
		ItemSeq:      view.Seq,
		OriginalName: view.OriginalName,
		Label:        view.Label,
		Bucket:       view.Bucket.String(),
		Score:        view.Score,
		Detail:       detail,
	}
}

func (s *Store) append(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if strings.TrimSpace(entries[0].BatchID) == "" {
		return errors.New("journal entry requires a batch id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin journal tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var position int
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), 0) FROM journal_entries WHERE batch_id = ?",
		entries[0].BatchID,
	).Scan(&position); err != nil {
		return fmt.Errorf("read journal position: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, entry := range entries {
		position++
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO journal_entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(),
			entry.BatchID,
			position,
			string(entry.Kind),
			nullableString(entry.Op),
			nullableInt(entry.ItemSeq),
			nullableString(entry.OriginalName),
			nullableString(entry.Label),
			nullableString(entry.Bucket),
			entry.Score,
			nullableString(entry.Detail),
			now,
		); err != nil {
			return fmt.Errorf("insert journal entry: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit journal: %w", err)
	}
	return nil
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (Entry, error) {
	var (
		entry        Entry
		kind         string
		op           sql.NullString
		itemSeq      sql.NullInt64
		originalName sql.NullString
		label        sql.NullString
		bucket       sql.NullString
		score        sql.NullFloat64
		detail       sql.NullString
		createdRaw   string
	)
	if err := scanner.Scan(
		&entry.ID,
		&entry.BatchID,
		&entry.Position,
		&kind,
		&op,
		&itemSeq,
		&originalName,
		&label,
		&bucket,
		&score,
		&detail,
		&createdRaw,
	); err != nil {
		return Entry{}, fmt.Errorf("scan journal entry: %w", err)
	}
	entry.Kind = Kind(kind)
	entry.Op = op.String
	entry.ItemSeq = int(itemSeq.Int64)
	entry.OriginalName = originalName.String
	entry.Label = label.String
	entry.Bucket = bucket.String
	entry.Score = score.Float64
	entry.Detail = detail.String
	if ts, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		entry.CreatedAt = ts
	}
	return entry, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func nullableInt(value int) any {
	if value == 0 {
		return nil
	}
	return value
}
