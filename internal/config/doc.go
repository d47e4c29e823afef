// Package config provides configuration management for movieshelf.
//
// This package handles:
//   - Loading and saving settings from TOML files
//   - Default configuration values
//   - Conversion to format.Options for the adapter registry
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Data files live in ~/Movieshelf
//	// New collections are saved as CSV
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.toml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.DefaultFormat = format.FormatXML
//	err := settings.Save("/path/to/config.toml")
//
// # Configuration Options
//
// Settings includes options for:
//   - The data directory and demo file name
//   - The default save format and CSV delimiter
//   - Log level, format and destination
package config
