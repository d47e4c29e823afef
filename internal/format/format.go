package format

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/handiism/movieshelf/internal/model"
)

// Format identifies an on-disk representation of a movie collection.
type Format int

const (
	// FormatCSV stores one "name,year,genre" line per movie.
	FormatCSV Format = iota

	// FormatBinary stores a checksummed, length-prefixed binary layout.
	FormatBinary

	// FormatXML stores a <movies> document with one <movie> element per entry.
	FormatXML

	// FormatSQLite stores a single-table SQLite database.
	FormatSQLite
)

var allFormats = []Format{FormatCSV, FormatBinary, FormatXML, FormatSQLite}

// Formats returns every supported format in menu order.
func Formats() []Format {
	return slices.Clone(allFormats)
}

// String returns the lowercase format name used on the command line.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatBinary:
		return "binary"
	case FormatXML:
		return "xml"
	case FormatSQLite:
		return "sqlite"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Title returns the display name used in status messages, e.g. "CSV".
func (f Format) Title() string {
	switch f {
	case FormatCSV:
		return "CSV"
	case FormatBinary:
		return "Binary"
	case FormatXML:
		return "XML"
	case FormatSQLite:
		return "SQLite"
	default:
		return f.String()
	}
}

// Extension returns the file extension for the format, including the dot.
//
// Returns:
//   - ".csv" for FormatCSV
//   - ".bin" for FormatBinary
//   - ".xml" for FormatXML
//   - ".db" for FormatSQLite
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatBinary:
		return ".bin"
	case FormatXML:
		return ".xml"
	case FormatSQLite:
		return ".db"
	default:
		return ""
	}
}

// ParseFormat resolves a format name or extension, ignoring case.
// Accepted values include "csv", "binary", "bin", "xml", "sqlite", "db",
// with or without a leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "csv":
		return FormatCSV, nil
	case "binary", "bin", "dat":
		return FormatBinary, nil
	case "xml":
		return FormatXML, nil
	case "sqlite", "sqlite3", "db":
		return FormatSQLite, nil
	}
	return 0, fmt.Errorf("unknown format %q", s)
}

// FromPath infers the format from a file extension.
func FromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, fmt.Errorf("cannot infer format of %q: no file extension", path)
	}
	return ParseFormat(ext)
}

// Set implements pflag.Value so a Format can be bound to a command line flag.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string {
	return "format"
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if !slices.Contains(allFormats, f) {
		return nil, fmt.Errorf("unknown format %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	return f.Set(string(text))
}

// Adapter saves and loads a movie collection in one format.
//
// Save must never leave a partially written destination: on failure the
// previous file, if any, is left untouched. Load returns an error wrapping
// errs.ErrNotFound for a missing path, errs.ErrIO for other read failures,
// and errs.ErrParse for malformed content. A well-formed file with no
// movies loads as an empty, non-nil slice.
type Adapter interface {
	Format() Format
	Save(ctx context.Context, path string, movies []model.Movie) error
	Load(ctx context.Context, path string) ([]model.Movie, error)
}

// Registry maps formats to their adapters.
type Registry struct {
	adapters map[Format]Adapter
}

// NewRegistry creates a registry holding the given adapters.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[Format]Adapter, len(adapters))}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds or replaces the adapter for a.Format().
func (r *Registry) Register(a Adapter) {
	r.adapters[a.Format()] = a
}

// Adapter returns the adapter registered for f.
func (r *Registry) Adapter(f Format) (Adapter, error) {
	a, ok := r.adapters[f]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for %s", f)
	}
	return a, nil
}

// Formats returns the registered formats in menu order.
func (r *Registry) Formats() []Format {
	var out []Format
	for _, f := range allFormats {
		if _, ok := r.adapters[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Options configures the default adapters.
type Options struct {
	// CSVDelimiter separates CSV fields. Zero means ','.
	CSVDelimiter rune
}

// DefaultRegistry returns a registry with every built-in adapter.
func DefaultRegistry(opts Options) *Registry {
	return NewRegistry(
		NewStreamAdapter(NewCSVCodec(opts.CSVDelimiter)),
		NewStreamAdapter(BinaryCodec{}),
		NewStreamAdapter(XMLCodec{}),
		NewSQLiteAdapter(),
	)
}
