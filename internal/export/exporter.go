package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/klauspost/compress/zip"

	"sheetmatch/internal/fileutil"
	"sheetmatch/internal/logging"
	"sheetmatch/internal/review"
	"sheetmatch/internal/textutil"
)

const (
	DefaultFolderName = "TM PRO"
	DefaultExtension  = "jpg"

	unlabeledName = "unlabeled"
)

// archiveEpoch is stamped on every entry so equal input yields equal bytes.
var archiveEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Exporter builds archives from session export entries.
type Exporter struct {
	FolderName string
	Extension  string
	Logger     *slog.Logger
}

// New returns an exporter with the given layout. Empty values fall back to
// the defaults.
func New(folderName, extension string, logger *slog.Logger) *Exporter {
	if folderName == "" {
		folderName = DefaultFolderName
	}
	if extension == "" {
		extension = DefaultExtension
	}
	return &Exporter{
		FolderName: folderName,
		Extension:  extension,
		Logger:     logging.NewComponentLogger(logger, "export"),
	}
}

// EntryName returns the archive path used for label when no other label in
// the archive claims the same name.
func (e *Exporter) EntryName(label string) string {
	return e.entryPath(textutil.SanitizePathSegment(label, unlabeledName))
}

func (e *Exporter) entryPath(base string) string {
	return e.FolderName + "/" + base + "." + e.Extension
}

type archiveEntry struct {
	name    string
	label   string
	payload []byte
	sources []string
}

// plan resolves entry names in order. Entries are keyed by their label: when
// two entries share a label the later payload replaces the earlier one, which
// keeps its original position. Distinct labels that sanitize to the same name
// get a " (2)", " (3)", ... suffix so neither image is lost.
func (e *Exporter) plan(entries []review.ExportEntry) []*archiveEntry {
	byLabel := make(map[string]*archiveEntry, len(entries))
	taken := make(map[string]bool, len(entries))
	ordered := make([]*archiveEntry, 0, len(entries))
	for _, entry := range entries {
		if existing, ok := byLabel[entry.Label]; ok {
			existing.payload = entry.Payload
			existing.sources = append(existing.sources, entry.OriginalName)
			continue
		}
		base := textutil.SanitizePathSegment(entry.Label, unlabeledName)
		name := e.entryPath(base)
		for n := 2; taken[name]; n++ {
			name = e.entryPath(fmt.Sprintf("%s (%d)", base, n))
		}
		taken[name] = true
		planned := &archiveEntry{name: name, label: entry.Label, payload: entry.Payload, sources: []string{entry.OriginalName}}
		byLabel[entry.Label] = planned
		ordered = append(ordered, planned)
	}
	return ordered
}

// Export returns the archive bytes for entries. An empty entry list yields a
// valid, empty archive.
func (e *Exporter) Export(entries []review.ExportEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	planned := e.plan(entries)
	for _, entry := range planned {
		if len(entry.sources) > 1 {
			logging.WarnWithContext(e.logger(), "label exported more than once", "export_label_collision",
				logging.String(logging.FieldLabel, entry.label),
				logging.String("entry", entry.name),
				logging.Any("images", entry.sources),
				logging.String(logging.FieldImpact, "only the last image is kept in the archive"),
				logging.String(logging.FieldErrorHint, "rebind or remove the extra images"),
			)
		}
		header := &zip.FileHeader{
			Name:     entry.name,
			Method:   zip.Deflate,
			Modified: archiveEpoch,
		}
		w, err := zw.CreateHeader(header)
		if err != nil {
			return nil, fmt.Errorf("create archive entry %q: %w", entry.name, err)
		}
		if _, err := w.Write(entry.payload); err != nil {
			return nil, fmt.Errorf("write archive entry %q: %w", entry.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	e.logger().Debug("archive built",
		logging.Int("entries", len(planned)),
		logging.Int("bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

// WriteFile builds the archive and writes it to path, replacing any previous
// archive atomically. It returns the number of entries written.
func (e *Exporter) WriteFile(path string, entries []review.ExportEntry) (int, error) {
	data, err := e.Export(entries)
	if err != nil {
		return 0, err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("write archive: %w", err)
	}

	count := len(e.plan(entries))
	e.logger().Info("archive written",
		logging.String("path", path),
		logging.Int("entries", count),
		logging.String("sha256", fileutil.Checksum(data)),
	)
	return count, nil
}

func (e *Exporter) logger() *slog.Logger {
	if e.Logger == nil {
		return logging.NewNop()
	}
	return e.Logger
}
