package config

const (
	defaultConfigPath       = "~/.config/sheetmatch/config.toml"
	projectConfigName       = "sheetmatch.toml"
	lockFileName            = ".sheetmatch.lock"
	outputDirEnv            = "SHEETMATCH_OUTPUT_DIR"
	defaultMatchThreshold   = 75.0
	defaultReviewThreshold  = 65.0
	defaultLabelColumn      = 3
	defaultSkipFilledColumn = 4
	defaultImageWidth       = 1200
	defaultImageHeight      = 800
	defaultJPEGQuality      = 95
	defaultFolderName       = "TM PRO"
	defaultExportExtension  = "jpg"
	defaultOutputDir        = "."
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

func defaultExtensions() []string {
	return []string{"jpg", "jpeg", "png", "webp"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Matching: Matching{
			MatchThreshold:  defaultMatchThreshold,
			ReviewThreshold: defaultReviewThreshold,
		},
		Reference: Reference{
			LabelColumn:      defaultLabelColumn,
			SkipFilledColumn: defaultSkipFilledColumn,
			HasHeader:        true,
		},
		Images: Images{
			Extensions:  defaultExtensions(),
			Reencode:    true,
			Width:       defaultImageWidth,
			Height:      defaultImageHeight,
			JPEGQuality: defaultJPEGQuality,
		},
		Export: Export{
			FolderName: defaultFolderName,
			Extension:  defaultExportExtension,
			OutputDir:  defaultOutputDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
