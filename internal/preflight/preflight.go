package preflight

import (
	"errors"
	"fmt"
	"path/filepath"

	"sheetmatch/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes the checks for a run that reads sheetPath and writes into
// the configured output directory.
func RunAll(cfg *config.Config, sheetPath string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckFileReadable("Reference sheet", sheetPath),
		CheckDirectoryAccess("Output directory", cfg.Export.OutputDir),
	}
	if cfg.Journal.Path != "" {
		results = append(results, CheckDirectoryAccess("Journal directory", filepath.Dir(cfg.Journal.Path)))
	}
	return results
}

// Err joins the failed results into one error, or returns nil when every
// check passed.
func Err(results []Result) error {
	var errs []error
	for _, result := range results {
		if !result.Passed {
			errs = append(errs, fmt.Errorf("%s: %s", result.Name, result.Detail))
		}
	}
	return errors.Join(errs...)
}
