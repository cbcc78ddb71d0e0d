package sheet

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat reports a sheet extension the loader cannot read.
var ErrUnsupportedFormat = errors.New("unsupported sheet format")

// Format identifies how a sheet is encoded.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatText Format = "txt"
)

// Options selects the label column of a delimited sheet.
type Options struct {
	// LabelColumn is the 1-based column holding label text.
	LabelColumn int
	// SkipFilledColumn drops rows whose cell in this 1-based column is
	// non-empty. Zero disables the filter.
	SkipFilledColumn int
	HasHeader        bool
}

// DetectFormat maps a file name to a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	case ".txt", ".lst":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q (use .csv, .tsv or .txt)", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// Load reads the sheet at path and returns its labels in row order.
func Load(path string, opts Options) ([]string, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()

	labels, err := Parse(f, format, opts)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", filepath.Base(path), err)
	}
	return labels, nil
}

// Parse reads labels from r. Blank labels are kept out; duplicates are kept so
// the reference index can apply its own first-occurrence rule.
func Parse(r io.Reader, format Format, opts Options) ([]string, error) {
	switch format {
	case FormatText:
		return parseText(r)
	case FormatCSV:
		return parseDelimited(r, ',', opts)
	case FormatTSV:
		return parseDelimited(r, '\t', opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func parseText(r io.Reader) ([]string, error) {
	var labels []string
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if label := strings.TrimSpace(line); label != "" {
			labels = append(labels, label)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan lines: %w", err)
	}
	return labels, nil
}

func parseDelimited(r io.Reader, comma rune, opts Options) ([]string, error) {
	if opts.LabelColumn < 1 {
		return nil, fmt.Errorf("label column must be 1 or greater, got %d", opts.LabelColumn)
	}
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	labelIdx := opts.LabelColumn - 1
	skipIdx := opts.SkipFilledColumn - 1

	var labels []string
	row := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse row %d: %w", row+1, err)
		}
		row++
		if row == 1 {
			if len(record) > 0 {
				record[0] = strings.TrimPrefix(record[0], "\ufeff")
			}
			if opts.HasHeader {
				continue
			}
		}
		if skipIdx >= 0 && cell(record, skipIdx) != "" {
			continue
		}
		if label := cell(record, labelIdx); label != "" {
			labels = append(labels, label)
		}
	}
	return labels, nil
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
