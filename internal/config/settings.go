package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"

	"github.com/handiism/movieshelf/internal/format"
)

// Settings holds all configuration options.
type Settings struct {
	// Storage
	DataDir       string        `toml:"data_dir"`
	DefaultFormat format.Format `toml:"default_format"`
	CSVDelimiter  string        `toml:"csv_delimiter"`
	DemoFile      string        `toml:"demo_file"`

	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"` // auto, console, json
	LogFile   string `toml:"log_file"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DataDir:       defaultDataDir(),
		DefaultFormat: format.FormatCSV,
		CSVDelimiter:  ",",
		DemoFile:      "demo_movies.csv",
		LogLevel:      "info",
		LogFormat:     "auto",
	}
}

// DefaultPath returns the location of the configuration file when none is
// given: $XDG_CONFIG_HOME/movieshelf/config.toml or its platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "movieshelf", "config.toml"), nil
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "movieshelf"
	}
	return filepath.Join(homeDir, "Movieshelf")
}

// Load reads settings from a TOML file.
//
// A missing file yields DefaultSettings. Keys absent from the file keep
// their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	settings := DefaultSettings()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(settings); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("parse config %s: %s", path, strict.String())
		}
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := settings.normalize(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to a TOML file, creating parent directories.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Settings) normalize() error {
	s.DataDir = strings.TrimSpace(s.DataDir)
	if s.DataDir == "" {
		s.DataDir = defaultDataDir()
	}
	dir, err := expandHome(s.DataDir)
	if err != nil {
		return fmt.Errorf("data_dir: %w", err)
	}
	s.DataDir = dir

	if s.CSVDelimiter == "" {
		s.CSVDelimiter = ","
	}
	if utf8.RuneCountInString(s.CSVDelimiter) != 1 {
		return fmt.Errorf("csv_delimiter: must be a single character, got %q", s.CSVDelimiter)
	}
	switch r, _ := utf8.DecodeRuneInString(s.CSVDelimiter); r {
	case '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("csv_delimiter: %q cannot be used", s.CSVDelimiter)
	}

	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	s.LogFormat = strings.ToLower(strings.TrimSpace(s.LogFormat))
	switch s.LogFormat {
	case "":
		s.LogFormat = "auto"
	case "auto", "console", "json":
	default:
		return fmt.Errorf("log_format: unknown value %q", s.LogFormat)
	}

	if strings.TrimSpace(s.DemoFile) == "" {
		s.DemoFile = "demo_movies.csv"
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// FormatOptions converts settings to the options used by format.DefaultRegistry.
func (s *Settings) FormatOptions() format.Options {
	r, _ := utf8.DecodeRuneInString(s.CSVDelimiter)
	if r == utf8.RuneError {
		r = ','
	}
	return format.Options{CSVDelimiter: r}
}

// DemoPath returns where the demonstration collection is written.
func (s *Settings) DemoPath() string {
	return filepath.Join(s.DataDir, s.DemoFile)
}
