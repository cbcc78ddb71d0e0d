// Package config loads, normalizes, and validates sheetmatch configuration.
//
// Configuration is read from TOML (go-toml/v2), filled with repository
// defaults, expanded (home-relative paths, environment overrides) and then
// validated. Threshold errors wrap review.ErrConfiguration so callers can
// treat them like any other configuration failure of the review core.
package config
