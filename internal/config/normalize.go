package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeImages()
	if err := c.normalizeExport(); err != nil {
		return err
	}
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeImages() {
	seen := make(map[string]struct{}, len(c.Images.Extensions))
	extensions := make([]string, 0, len(c.Images.Extensions))
	for _, ext := range c.Images.Extensions {
		ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if ext == "" {
			continue
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		extensions = append(extensions, ext)
	}
	if len(extensions) == 0 {
		extensions = defaultExtensions()
	}
	c.Images.Extensions = extensions
}

func (c *Config) normalizeExport() error {
	if value, ok := os.LookupEnv(outputDirEnv); ok && strings.TrimSpace(value) != "" {
		c.Export.OutputDir = value
	}
	c.Export.FolderName = strings.TrimSpace(c.Export.FolderName)
	if c.Export.FolderName == "" {
		c.Export.FolderName = defaultFolderName
	}
	c.Export.Extension = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Export.Extension)), ".")
	if c.Export.Extension == "" {
		c.Export.Extension = defaultExportExtension
	}
	if strings.TrimSpace(c.Export.OutputDir) == "" {
		c.Export.OutputDir = defaultOutputDir
	}
	var err error
	if c.Export.OutputDir, err = expandPath(c.Export.OutputDir); err != nil {
		return fmt.Errorf("export.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeJournal() error {
	path := strings.TrimSpace(c.Journal.Path)
	if path == "" {
		c.Journal.Path = ""
		return nil
	}
	var err error
	if c.Journal.Path, err = expandPath(path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		var err error
		if c.Logging.File, err = expandPath(file); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}
