package session

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/handiism/movieshelf/internal/collection"
	"github.com/handiism/movieshelf/internal/errs"
	"github.com/handiism/movieshelf/internal/format"
	ioutils "github.com/handiism/movieshelf/internal/io"
	"github.com/handiism/movieshelf/internal/model"
)

//go:embed demo_movies.csv
var demoCSV []byte

// Level indicates the severity of a Result.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Result is the outcome of one user action.
//
// Message is ready for display. Err is set when the action failed and can
// be classified with errs.Kind.
type Result struct {
	Level   Level
	Message string
	Err     error
}

// Failed reports whether the action was rejected or failed.
func (r Result) Failed() bool {
	return r.Level == LevelWarning || r.Level == LevelError
}

func success(format string, args ...any) Result {
	return Result{Level: LevelSuccess, Message: fmt.Sprintf(format, args...)}
}

func warning(err error, format string, args ...any) Result {
	return Result{Level: LevelWarning, Message: fmt.Sprintf(format, args...), Err: err}
}

func failure(err error, format string, args ...any) Result {
	return Result{Level: LevelError, Message: fmt.Sprintf(format, args...), Err: err}
}

// Session holds the collection being edited and performs user actions on it.
//
// Every action either applies fully or leaves the collection untouched.
// A Session is not safe for concurrent use.
type Session struct {
	store    *collection.Collection
	registry *format.Registry
	logger   zerolog.Logger
	dataDir  string
	demoFile string
	active   bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithDataDir sets the directory used for default file paths and the demo
// collection.
func WithDataDir(dir string) Option {
	return func(s *Session) { s.dataDir = dir }
}

// WithDemoFile sets the file name of the demo collection inside the data dir.
func WithDemoFile(name string) Option {
	return func(s *Session) { s.demoFile = name }
}

// New creates a Session over store. A nil store starts an empty collection.
func New(store *collection.Collection, registry *format.Registry, opts ...Option) *Session {
	if store == nil {
		store = collection.New()
	}
	s := &Session{
		store:    store,
		registry: registry,
		logger:   zerolog.Nop(),
		dataDir:  ".",
		demoFile: "demo_movies.csv",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Movies returns the collection in display order.
func (s *Session) Movies() []model.Movie {
	return s.store.All()
}

// Len returns the number of movies in the collection.
func (s *Session) Len() int {
	return s.store.Len()
}

// Find returns movies whose name matches query. See collection.Find.
func (s *Session) Find(query string) []model.Movie {
	return s.store.Find(query)
}

// CanSave reports whether there is anything to save.
func (s *Session) CanSave() bool {
	return !s.store.IsEmpty()
}

// Active reports whether a session is open.
func (s *Session) Active() bool {
	return s.active
}

// Formats lists the formats the session can save and load.
func (s *Session) Formats() []format.Format {
	return s.registry.Formats()
}

// DefaultPath suggests a file path in the data directory for name saved as f.
func (s *Session) DefaultPath(f format.Format, name string) string {
	name = ioutils.SanitizeFileName(name)
	if name == "" {
		name = "movies"
	}
	return filepath.Join(s.dataDir, name+f.Extension())
}

// NewSession opens an empty session, discarding the current collection.
func (s *Session) NewSession() Result {
	s.store.Clear()
	s.active = true
	s.logger.Debug().Msg("new session")
	return Result{Level: LevelInfo}
}

// CloseSession clears the collection and closes the session.
func (s *Session) CloseSession() Result {
	s.store.Clear()
	s.active = false
	s.logger.Debug().Msg("session closed")
	return Result{Level: LevelInfo}
}

// OnAdd validates form input and adds the movie to the collection.
//
// The returned movie is the normalized record on success and the zero
// Movie otherwise. Adding a movie that is already present is not an error.
func (s *Session) OnAdd(name, year, genre string) (model.Movie, Result) {
	m, res := parseForm(name, year, genre)
	if res.Failed() {
		return model.Movie{}, res
	}

	if s.store.Contains(m) {
		return m, Result{Level: LevelInfo, Message: fmt.Sprintf("%s is already in the collection", m.Name)}
	}
	s.store.Add(m)
	s.logger.Debug().Stringer("movie", m).Int("movies", s.store.Len()).Msg("movie added")
	return m, success("Movie added: %s", m.Name)
}

// OnEdit replaces old with the movie described by the form input.
func (s *Session) OnEdit(old model.Movie, name, year, genre string) (model.Movie, Result) {
	if !s.store.Contains(old) {
		err := errs.NewValidationError("movie", old.String(), "not in the collection")
		return model.Movie{}, warning(err, "%s is not in the collection", old.Name)
	}

	m, res := parseForm(name, year, genre)
	if res.Failed() {
		return model.Movie{}, res
	}
	if m.Equal(old) {
		return m, Result{Level: LevelInfo, Message: "No changes to " + m.Name}
	}
	if s.store.Contains(m) {
		err := errs.NewValidationError("movie", m.String(), "duplicate")
		return model.Movie{}, warning(err, "%s is already in the collection", m.Name)
	}

	s.store.Remove(old)
	s.store.Add(m)
	s.logger.Debug().Stringer("old", old).Stringer("movie", m).Msg("movie updated")
	return m, success("Movie updated: %s", m.Name)
}

// OnDelete removes m from the collection.
func (s *Session) OnDelete(m model.Movie) Result {
	if !s.store.Contains(m) {
		err := errs.NewValidationError("movie", m.String(), "not in the collection")
		return warning(err, "%s is not in the collection", m.Name)
	}
	s.store.Remove(m)
	s.logger.Debug().Stringer("movie", m).Int("movies", s.store.Len()).Msg("movie deleted")
	return success("%s has been deleted.", m.Name)
}

// OnSave writes the collection to path in format f.
func (s *Session) OnSave(ctx context.Context, f format.Format, path string) Result {
	if s.store.IsEmpty() {
		return warning(nil, "No movies to save!")
	}

	adapter, err := s.registry.Adapter(f)
	if err != nil {
		return failure(err, "Error occurred while saving movies as %s!", f.Title())
	}

	movies := s.store.All()
	if err := adapter.Save(ctx, path, movies); err != nil {
		s.logger.Warn().Err(err).Str("format", f.String()).Str("path", path).Msg("save failed")
		return failure(err, "Error occurred while saving movies as %s!", f.Title())
	}

	s.logger.Info().Str("format", f.String()).Str("path", path).Int("movies", len(movies)).Msg("collection saved")
	return success("Movie data saved as %s!", f.Title())
}

// OnLoad replaces the collection with the contents of path.
//
// The collection changes only when the whole file loads and holds at least
// one movie; an empty file is reported and the current collection is kept.
func (s *Session) OnLoad(ctx context.Context, f format.Format, path string) Result {
	adapter, err := s.registry.Adapter(f)
	if err != nil {
		return failure(err, "Error occurred while loading movie set from %s file!", f.Title())
	}

	movies, err := adapter.Load(ctx, path)
	switch {
	case errors.Is(err, errs.ErrParse):
		s.logger.Warn().Err(err).Str("format", f.String()).Str("path", path).Msg("malformed movie file")
		return failure(err, "Invalid movie set in the %s file!", f.Title())
	case err != nil:
		s.logger.Warn().Err(err).Str("format", f.String()).Str("path", path).Msg("load failed")
		return failure(err, "Error occurred while loading movie set from %s file!", f.Title())
	case len(movies) == 0:
		s.logger.Info().Str("format", f.String()).Str("path", path).Msg("movie file is empty")
		return warning(nil, "Invalid movie set in the %s file!", f.Title())
	}

	s.store.Replace(movies)
	s.active = true
	s.logger.Info().Str("format", f.String()).Str("path", path).Int("movies", s.store.Len()).Msg("collection loaded")
	return success("Movie set loaded from %s", f.Title())
}

// OpenDemo writes the bundled example collection to the data directory and
// loads it.
func (s *Session) OpenDemo(ctx context.Context) Result {
	movies, err := format.NewCSVCodec(',').Decode(bytes.NewReader(demoCSV))
	if err != nil {
		return failure(err, "Error occurred while preparing the demo collection!")
	}

	if err := ioutils.EnsureDir(s.dataDir); err != nil {
		err = errs.NewIOError("mkdir", s.dataDir, err)
		return failure(err, "Error occurred while preparing the demo collection!")
	}

	adapter, err := s.registry.Adapter(format.FormatCSV)
	if err != nil {
		return failure(err, "Error occurred while preparing the demo collection!")
	}
	path := filepath.Join(s.dataDir, s.demoFile)
	if err := adapter.Save(ctx, path, movies); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("writing demo collection failed")
		return failure(err, "Error occurred while preparing the demo collection!")
	}

	return s.OnLoad(ctx, format.FormatCSV, path)
}

// parseForm turns form input into a movie, mapping each validation failure
// to its status message.
func parseForm(name, year, genre string) (model.Movie, Result) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(year) == "" {
		err := errs.NewValidationError("", nil, "name and release year are required")
		return model.Movie{}, warning(err, "Please enter movie details!")
	}

	m, err := model.ParseMovie(name, year, genre)
	if err == nil {
		return m, Result{Level: LevelSuccess}
	}

	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		return model.Movie{}, failure(err, "Please enter movie details!")
	}
	switch verr.Field {
	case "release year":
		// An int value means the year parsed but is out of range.
		if _, ok := verr.Value.(int); ok {
			return model.Movie{}, warning(err, "Invalid release year!")
		}
		return model.Movie{}, warning(err, "Invalid release year! Please enter a valid number.")
	case "genre":
		return model.Movie{}, warning(err, "Please select a valid genre!")
	}
	return model.Movie{}, warning(err, "Please enter movie details!")
}
