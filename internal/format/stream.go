package format

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"github.com/handiism/movieshelf/internal/errs"
	ioutils "github.com/handiism/movieshelf/internal/io"
	"github.com/handiism/movieshelf/internal/model"
)

// Codec converts movies to and from a byte stream.
//
// Decode reports malformed content as *errs.ParseError; any other error is
// treated as a read failure.
type Codec interface {
	Format() Format
	Encode(w io.Writer, movies []model.Movie) error
	Decode(r io.Reader) ([]model.Movie, error)
}

// StreamAdapter turns a Codec into a file Adapter with atomic saves.
type StreamAdapter struct {
	codec Codec
}

// NewStreamAdapter wraps codec.
func NewStreamAdapter(codec Codec) *StreamAdapter {
	return &StreamAdapter{codec: codec}
}

// Format implements Adapter.
func (a *StreamAdapter) Format() Format {
	return a.codec.Format()
}

// Save implements Adapter.
func (a *StreamAdapter) Save(ctx context.Context, path string, movies []model.Movie) error {
	if err := validateMovies(movies); err != nil {
		return err
	}
	err := ioutils.WriteFileAtomic(ctx, path, func(w io.Writer) error {
		return a.codec.Encode(w, movies)
	})
	if err != nil {
		return saveError(path, err)
	}
	return nil
}

// Load implements Adapter.
func (a *StreamAdapter) Load(ctx context.Context, path string) ([]model.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errs.NewIOError("open", path, err)
	}
	defer f.Close()

	movies, err := a.codec.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, loadError(path, err)
	}
	if movies == nil {
		movies = []model.Movie{}
	}
	return movies, nil
}

// validateMovies rejects records that would not load back unchanged, before
// anything touches the destination.
func validateMovies(movies []model.Movie) error {
	for _, m := range movies {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// saveError keeps classified errors as they are and wraps the rest as I/O.
func saveError(path string, err error) error {
	if errs.Kind(err) != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errs.NewIOError("save", path, err)
}

// loadError attaches the path to parse errors and wraps the rest as I/O.
func loadError(path string, err error) error {
	var perr *errs.ParseError
	if errors.As(err, &perr) {
		if perr.Path == "" {
			perr.Path = path
		}
		return err
	}
	return errs.NewIOError("read", path, err)
}
