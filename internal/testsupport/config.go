package testsupport

import (
	"path/filepath"
	"testing"

	"sheetmatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp output directory per
// test. Re-encoding is disabled so fixtures keep their bytes; the journal is
// kept in memory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Export.OutputDir = filepath.Join(base, "out")
	cfgVal.Images.Reencode = false
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithMatchThreshold overrides the match threshold.
func WithMatchThreshold(value float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.MatchThreshold = value
	}
}

// WithReencode enables payload re-encoding at a small target size.
func WithReencode(width, height int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Images.Reencode = true
		b.cfg.Images.Width = width
		b.cfg.Images.Height = height
	}
}

// WithJournalFile stores the journal in a sqlite file under the test's temp dir.
func WithJournalFile() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Path = filepath.Join(b.baseDir, "state", "journal.db")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Export.OutputDir)
}
