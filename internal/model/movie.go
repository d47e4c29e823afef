package model

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/handiism/movieshelf/internal/errs"
)

// Release year bounds accepted from user input.
const (
	MinReleaseYear = 1000
	MaxReleaseYear = 3000
)

// Movie is a single entry of the collection.
//
// Movies have a natural ordering (see Compare): by name, then release year,
// then genre. Two movies that compare equal are the same entry as far as the
// collection is concerned.
//
// Example:
//
//	m := NewMovie("Inception", 2010, GenreSciFi)
//	fmt.Println(m) // Inception (2010, Sci-Fi)
type Movie struct {
	// Name is the movie title. Never empty for a valid movie.
	Name string

	// ReleaseYear is the year the movie was released. The record itself
	// does not constrain the range; see ParseYear for input validation.
	ReleaseYear int

	// Genre is one of the supported genres.
	Genre Genre
}

// NewMovie creates a Movie with a normalized name.
//
// The name is trimmed and converted to Unicode NFC so that names typed with
// combining characters compare equal to their precomposed form.
func NewMovie(name string, releaseYear int, genre Genre) Movie {
	return Movie{
		Name:        NormalizeName(name),
		ReleaseYear: releaseYear,
		Genre:       genre,
	}
}

// NormalizeName trims surrounding whitespace and applies NFC normalization.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// Validate checks the invariants a stored movie must hold: a non-empty name
// without control characters and a supported genre.
func (m Movie) Validate() error {
	if err := validateName(m.Name); err != nil {
		return err
	}
	if !m.Genre.Valid() {
		return errs.NewValidationError("genre", string(m.Genre), "unknown genre "+string(m.Genre))
	}
	return nil
}

// Compare orders movies by name, then release year, then genre.
// It returns a negative number when a sorts before b, zero when they are
// equal, and a positive number otherwise.
func Compare(a, b Movie) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := cmp.Compare(a.ReleaseYear, b.ReleaseYear); c != 0 {
		return c
	}
	return strings.Compare(string(a.Genre), string(b.Genre))
}

// Compare orders m relative to o. See the package-level Compare.
func (m Movie) Compare(o Movie) int {
	return Compare(m, o)
}

// Equal reports whether m and o are the same entry under the natural ordering.
func (m Movie) Equal(o Movie) bool {
	return Compare(m, o) == 0
}

// String returns a human-readable form like "Inception (2010, Sci-Fi)".
func (m Movie) String() string {
	return fmt.Sprintf("%s (%d, %s)", m.Name, m.ReleaseYear, m.Genre)
}

// ParseYear validates release year input typed by a user.
//
// The text must be a base-10 integer within MinReleaseYear..MaxReleaseYear
// inclusive.
//
// Example:
//
//	ParseYear("2010") // 2010, nil
//	ParseYear("abc")  // validation error: not a number
//	ParseYear("500")  // validation error: out of range
func ParseYear(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, errs.NewValidationError("release year", text, "must not be empty")
	}
	year, err := strconv.Atoi(text)
	if err != nil {
		return 0, errs.NewValidationError("release year", text, "not a number")
	}
	if year < MinReleaseYear || year > MaxReleaseYear {
		return 0, errs.NewValidationError("release year", year,
			fmt.Sprintf("must be between %d and %d", MinReleaseYear, MaxReleaseYear))
	}
	return year, nil
}

// ParseMovie builds a Movie from raw form input, validating each field.
//
// Fields are checked in the order they appear on the form: name, release
// year, genre. The first failure is returned as an *errs.ValidationError.
func ParseMovie(name, year, genre string) (Movie, error) {
	if err := validateName(NormalizeName(name)); err != nil {
		return Movie{}, err
	}
	releaseYear, err := ParseYear(year)
	if err != nil {
		return Movie{}, err
	}
	g, err := ParseGenre(genre)
	if err != nil {
		return Movie{}, err
	}
	return NewMovie(name, releaseYear, g), nil
}

// validateName rejects empty names and names holding control characters such
// as tabs or line breaks, which not every file format can store unchanged.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValidationError("name", name, "must not be empty")
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return errs.NewValidationError("name", name, "must not contain control characters")
	}
	return nil
}
