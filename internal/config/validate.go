package config

import (
	"errors"
	"fmt"
	"strings"

	"sheetmatch/internal/review"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateReference(); err != nil {
		return err
	}
	if err := c.validateImages(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateMatching() error {
	if err := c.Policy().Validate(); err != nil {
		return fmt.Errorf("matching: %w", err)
	}
	return nil
}

func (c *Config) validateReference() error {
	if c.Reference.LabelColumn < 1 {
		return fmt.Errorf("%w: reference.label_column must be 1 or greater", review.ErrConfiguration)
	}
	if c.Reference.SkipFilledColumn < 0 {
		return fmt.Errorf("%w: reference.skip_filled_column must be 0 (disabled) or a column number", review.ErrConfiguration)
	}
	if c.Reference.SkipFilledColumn == c.Reference.LabelColumn {
		return fmt.Errorf("%w: reference.skip_filled_column must differ from reference.label_column", review.ErrConfiguration)
	}
	return nil
}

func (c *Config) validateImages() error {
	if err := ensurePositiveMap(map[string]int{
		"images.width":  c.Images.Width,
		"images.height": c.Images.Height,
	}); err != nil {
		return err
	}
	if c.Images.JPEGQuality < 1 || c.Images.JPEGQuality > 100 {
		return fmt.Errorf("%w: images.jpeg_quality must be between 1 and 100", review.ErrConfiguration)
	}
	return nil
}

func (c *Config) validateExport() error {
	if strings.ContainsAny(c.Export.FolderName, `/\`) {
		return fmt.Errorf("%w: export.folder_name must not contain path separators", review.ErrConfiguration)
	}
	for _, r := range c.Export.Extension {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return fmt.Errorf("%w: export.extension must be alphanumeric, got %q", review.ErrConfiguration, c.Export.Extension)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q", review.ErrConfiguration, c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: logging.level %q is not recognized", review.ErrConfiguration, c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return errors.Join(review.ErrConfiguration, fmt.Errorf("%s must be positive", key))
		}
	}
	return nil
}
