// Package config provides configuration management for flacpress.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - The read-only Conversion value consumed by the core packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// ffmpeg located via $PATH
//	// one worker per CPU
//	// fail-fast on the first failed conversion
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # The Conversion value
//
// A Conversion combines the persisted settings with the per-run album
// metadata and paths from the command line. It is immutable for the
// duration of a run, which is what makes the concurrent job fan-out in
// internal/batch safe without locks.
package config
