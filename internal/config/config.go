package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"sheetmatch/internal/review"
)

//go:embed sample_config.toml
var sampleConfig string

// Matching contains classification thresholds.
type Matching struct {
	MatchThreshold float64 `toml:"match_threshold"`
	// ReviewThreshold is accepted and reported but does not change classification.
	ReviewThreshold float64 `toml:"review_threshold"`
}

// Reference describes how labels are read from the reference sheet.
type Reference struct {
	// LabelColumn is the 1-based column holding label text.
	LabelColumn int `toml:"label_column"`
	// SkipFilledColumn skips rows whose cell in this 1-based column is
	// non-empty. Zero disables the filter.
	SkipFilledColumn int  `toml:"skip_filled_column"`
	HasHeader        bool `toml:"has_header"`
}

// Images contains upload filtering and payload preparation settings.
type Images struct {
	Extensions  []string `toml:"extensions"`
	Reencode    bool     `toml:"reencode"`
	Width       int      `toml:"width"`
	Height      int      `toml:"height"`
	JPEGQuality int      `toml:"jpeg_quality"`
}

// Export contains archive layout settings.
type Export struct {
	FolderName string `toml:"folder_name"`
	Extension  string `toml:"extension"`
	OutputDir  string `toml:"output_dir"`
}

// Journal contains command journal settings.
type Journal struct {
	// Path of the sqlite journal. Empty keeps the journal in memory.
	Path string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for sheetmatch.
//
// Configuration sections by subsystem:
//   - Matching: classification thresholds
//   - Reference: reference sheet column layout
//   - Images: accepted extensions and payload re-encoding
//   - Export: archive folder, entry extension and output directory
//   - Journal: command journal location
//   - Logging: log format, level and optional file
type Config struct {
	Matching  Matching  `toml:"matching"`
	Reference Reference `toml:"reference"`
	Images    Images    `toml:"images"`
	Export    Export    `toml:"export"`
	Journal   Journal   `toml:"journal"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output directory and, for a file journal, its
// parent directory.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Export.OutputDir}
	if c.Journal.Path != "" {
		dirs = append(dirs, filepath.Dir(c.Journal.Path))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Policy returns the classification thresholds as a review policy.
func (c *Config) Policy() review.Policy {
	return review.Policy{
		MatchThreshold:  c.Matching.MatchThreshold,
		ReviewThreshold: c.Matching.ReviewThreshold,
	}
}

// ArchivePath returns the file the export archive is written to.
func (c *Config) ArchivePath() string {
	return filepath.Join(c.Export.OutputDir, c.Export.FolderName+".zip")
}

// LockPath returns the lock file guarding the output directory.
func (c *Config) LockPath() string {
	return filepath.Join(c.Export.OutputDir, lockFileName)
}

// AcceptsImage reports whether name carries one of the configured image extensions.
func (c *Config) AcceptsImage(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return false
	}
	for _, allowed := range c.Images.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
