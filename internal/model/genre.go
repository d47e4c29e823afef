package model

import (
	"strings"

	"github.com/handiism/movieshelf/internal/errs"
)

// Genre is one entry of the fixed genre list offered to the user.
type Genre string

// Supported genres, in the order they are offered for selection.
const (
	GenreAction      Genre = "Action"
	GenreAdventure   Genre = "Adventure"
	GenreAnimation   Genre = "Animation"
	GenreComedy      Genre = "Comedy"
	GenreCrime       Genre = "Crime"
	GenreDocumentary Genre = "Documentary"
	GenreDrama       Genre = "Drama"
	GenreFamily      Genre = "Family"
	GenreFantasy     Genre = "Fantasy"
	GenreHorror      Genre = "Horror"
	GenreMusical     Genre = "Musical"
	GenreMystery     Genre = "Mystery"
	GenreRomance     Genre = "Romance"
	GenreSciFi       Genre = "Sci-Fi"
	GenreThriller    Genre = "Thriller"
	GenreWar         Genre = "War"
	GenreWestern     Genre = "Western"
)

// GenrePlaceholder is the prompt shown before a genre has been picked.
// It is never a valid genre.
const GenrePlaceholder = "Select genre"

var genres = []Genre{
	GenreAction,
	GenreAdventure,
	GenreAnimation,
	GenreComedy,
	GenreCrime,
	GenreDocumentary,
	GenreDrama,
	GenreFamily,
	GenreFantasy,
	GenreHorror,
	GenreMusical,
	GenreMystery,
	GenreRomance,
	GenreSciFi,
	GenreThriller,
	GenreWar,
	GenreWestern,
}

// Genres returns the selectable genres. The returned slice is a copy.
func Genres() []Genre {
	out := make([]Genre, len(genres))
	copy(out, genres)
	return out
}

// Valid reports whether g is one of the supported genres.
func (g Genre) Valid() bool {
	for _, known := range genres {
		if g == known {
			return true
		}
	}
	return false
}

// String returns the display name of the genre.
func (g Genre) String() string {
	return string(g)
}

// ParseGenre resolves user or file input to a supported genre.
//
// Matching ignores case and surrounding whitespace, so "sci-fi" and
// " Sci-Fi " both resolve to GenreSciFi. The placeholder and the empty
// string are rejected with a validation error.
func ParseGenre(s string) (Genre, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, GenrePlaceholder) {
		return "", errs.NewValidationError("genre", s, "no genre selected")
	}
	for _, g := range genres {
		if strings.EqualFold(s, string(g)) {
			return g, nil
		}
	}
	return "", errs.NewValidationError("genre", s, "unknown genre "+s)
}
