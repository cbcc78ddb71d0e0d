package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"sheetmatch/internal/config"
	"sheetmatch/internal/review"
)

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("SHEETMATCH_OUTPUT_DIR", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "sheetmatch", "config.toml"); resolved != want {
		t.Fatalf("resolved = %q, want %q", resolved, want)
	}
	if cfg.Matching.MatchThreshold != 75 || cfg.Matching.ReviewThreshold != 65 {
		t.Fatalf("unexpected thresholds: %+v", cfg.Matching)
	}
	if cfg.Export.FolderName != "TM PRO" || cfg.Export.Extension != "jpg" {
		t.Fatalf("unexpected export defaults: %+v", cfg.Export)
	}
	if !filepath.IsAbs(cfg.Export.OutputDir) {
		t.Fatalf("output dir should be absolute, got %q", cfg.Export.OutputDir)
	}
	if cfg.Reference.LabelColumn != 3 || cfg.Reference.SkipFilledColumn != 4 || !cfg.Reference.HasHeader {
		t.Fatalf("unexpected reference defaults: %+v", cfg.Reference)
	}
	if cfg.Images.Width != 1200 || cfg.Images.Height != 800 || cfg.Images.JPEGQuality != 95 {
		t.Fatalf("unexpected image defaults: %+v", cfg.Images)
	}
	if cfg.Journal.Path != "" {
		t.Fatalf("journal should default to memory, got %q", cfg.Journal.Path)
	}
	if got := cfg.Policy(); got != review.DefaultPolicy() {
		t.Fatalf("Policy() = %+v", got)
	}
}

func TestLoadProjectFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SHEETMATCH_OUTPUT_DIR", "")
	dir := t.TempDir()
	t.Chdir(dir)

	content := `
[matching]
match_threshold = 70.0

[images]
extensions = [".JPG", "png", "png"]

[export]
folder_name = " Catalog "
output_dir = "out"
`
	if err := os.WriteFile(filepath.Join(dir, "sheetmatch.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "sheetmatch.toml" {
		t.Fatalf("expected project config, got %q exists=%v", resolved, exists)
	}
	if cfg.Matching.MatchThreshold != 70 || cfg.Matching.ReviewThreshold != 65 {
		t.Fatalf("unexpected thresholds: %+v", cfg.Matching)
	}
	if strings.Join(cfg.Images.Extensions, ",") != "jpg,png" {
		t.Fatalf("extensions = %v", cfg.Images.Extensions)
	}
	if cfg.Export.FolderName != "Catalog" {
		t.Fatalf("folder name = %q", cfg.Export.FolderName)
	}
	wantDir, _ := filepath.Abs(filepath.Join(dir, "out"))
	if cfg.Export.OutputDir != wantDir {
		t.Fatalf("output dir = %q, want %q", cfg.Export.OutputDir, wantDir)
	}
	if cfg.ArchivePath() != filepath.Join(wantDir, "Catalog.zip") {
		t.Fatalf("ArchivePath() = %q", cfg.ArchivePath())
	}
	if !cfg.AcceptsImage("A.JPG") || cfg.AcceptsImage("a.webp") || cfg.AcceptsImage("noext") {
		t.Fatal("AcceptsImage does not follow configured extensions")
	}
}

func TestLoadOutputDirFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	out := t.TempDir()
	t.Setenv("SHEETMATCH_OUTPUT_DIR", out)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Export.OutputDir != out {
		t.Fatalf("output dir = %q, want %q", cfg.Export.OutputDir, out)
	}
	if cfg.LockPath() != filepath.Join(out, ".sheetmatch.lock") {
		t.Fatalf("LockPath() = %q", cfg.LockPath())
	}
}

func TestLoadAcceptsIntegerThresholds(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SHEETMATCH_OUTPUT_DIR", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[matching]\nmatch_threshold = 80\nreview_threshold = 60\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Matching.MatchThreshold != 80 || cfg.Matching.ReviewThreshold != 60 {
		t.Fatalf("thresholds = %v/%v, want 80/60", cfg.Matching.MatchThreshold, cfg.Matching.ReviewThreshold)
	}
}

func TestLoadRejectsInvalidThresholds(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cases := map[string]string{
		"match above range":  "[matching]\nmatch_threshold = 101.0\n",
		"match below range":  "[matching]\nmatch_threshold = -1.0\n",
		"review above range": "[matching]\nreview_threshold = 150.0\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if !errors.Is(err, review.ErrConfiguration) {
				t.Fatalf("Load error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[matching]\nthreshold = 80.0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"label column", func(c *config.Config) { c.Reference.LabelColumn = 0 }},
		{"skip column equals label column", func(c *config.Config) { c.Reference.SkipFilledColumn = c.Reference.LabelColumn }},
		{"width", func(c *config.Config) { c.Images.Width = 0 }},
		{"quality", func(c *config.Config) { c.Images.JPEGQuality = 101 }},
		{"folder separator", func(c *config.Config) { c.Export.FolderName = "a/b" }},
		{"extension", func(c *config.Config) { c.Export.Extension = "j.pg" }},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"log level", func(c *config.Config) { c.Logging.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, review.ErrConfiguration) {
				t.Fatalf("Validate() = %v, want ErrConfiguration", err)
			}
		})
	}
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var parsed config.Config
	if err := toml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	defaults := config.Default()
	if parsed.Matching != defaults.Matching || parsed.Reference != defaults.Reference || parsed.Export != defaults.Export {
		t.Fatalf("sample config drifted from defaults: %+v", parsed)
	}
	if parsed.Images.Width != defaults.Images.Width || parsed.Images.JPEGQuality != defaults.Images.JPEGQuality {
		t.Fatalf("sample images section drifted: %+v", parsed.Images)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Export.OutputDir = filepath.Join(base, "out")
	cfg.Journal.Path = filepath.Join(base, "state", "journal.db")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Export.OutputDir, filepath.Dir(cfg.Journal.Path)} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
}
