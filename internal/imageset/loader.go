package imageset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sheetmatch/internal/logging"
	"sheetmatch/internal/review"
)

// Skipped records an argument or file that was left out of the batch.
type Skipped struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Result is the ordered batch plus everything that was skipped.
type Result struct {
	Images  []review.Image
	Skipped []Skipped
}

// Loader reads image files in argument order. Directories contribute their
// direct entries sorted by name.
type Loader struct {
	// Accept reports whether a file name has a supported image extension.
	Accept func(name string) bool
	// Prepare, when set, turns raw file bytes into the archived payload.
	Prepare func(data []byte) ([]byte, error)
	Logger  *slog.Logger
}

// Load expands paths and reads every accepted image. Unreadable or
// undecodable files are skipped and reported; a missing argument is an error.
func (l *Loader) Load(ctx context.Context, paths []string) (Result, error) {
	logger := logging.NewComponentLogger(l.Logger, "imageset")
	files, skipped, err := l.expand(paths)
	if err != nil {
		return Result{}, err
	}

	result := Result{Images: make([]review.Image, 0, len(files)), Skipped: skipped}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		payload, err := os.ReadFile(path)
		if err != nil {
			result.Skipped = append(result.Skipped, Skipped{Path: path, Reason: err.Error()})
			continue
		}
		if l.Prepare != nil {
			prepared, err := l.Prepare(payload)
			if err != nil {
				result.Skipped = append(result.Skipped, Skipped{Path: path, Reason: err.Error()})
				continue
			}
			payload = prepared
		}
		result.Images = append(result.Images, review.Image{Name: filepath.Base(path), Payload: payload})
	}

	for _, skip := range result.Skipped {
		logging.WarnWithContext(logger, "image skipped", "image_skipped",
			logging.String("path", skip.Path),
			logging.String("reason", skip.Reason),
			logging.String(logging.FieldImpact, "the file is not part of this batch"),
			logging.String(logging.FieldErrorHint, "check the file type and that it is a readable image"),
		)
	}
	logger.Debug("images loaded",
		logging.Int("images", len(result.Images)),
		logging.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

func (l *Loader) expand(paths []string) ([]string, []Skipped, error) {
	var files []string
	var skipped []Skipped
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, nil, fmt.Errorf("image argument %q: %w", path, err)
		}
		if !info.IsDir() {
			if l.accepts(path) {
				files = append(files, path)
			} else {
				skipped = append(skipped, Skipped{Path: path, Reason: "unsupported extension"})
			}
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, nil, fmt.Errorf("read image directory %q: %w", path, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !l.accepts(entry.Name()) {
				continue
			}
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	return files, skipped, nil
}

func (l *Loader) accepts(name string) bool {
	if l.Accept == nil {
		return true
	}
	return l.Accept(name)
}
