package model

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/movieshelf/internal/errs"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Movie
		want int
	}{
		{"name first", NewMovie("Alien", 2020, GenreWar), NewMovie("Brazil", 1900, GenreAction), -1},
		{"then year", NewMovie("Dune", 1984, GenreSciFi), NewMovie("Dune", 2021, GenreSciFi), -1},
		{"then genre", NewMovie("Heat", 1995, GenreThriller), NewMovie("Heat", 1995, GenreCrime), 1},
		{"equal", NewMovie("Up", 2009, GenreAnimation), NewMovie("Up", 2009, GenreAnimation), 0},
		{"case sensitive", NewMovie("alien", 1979, GenreHorror), NewMovie("Alien", 1979, GenreHorror), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.a, tt.b)
			switch {
			case tt.want < 0:
				assert.Negative(t, got)
			case tt.want > 0:
				assert.Positive(t, got)
			default:
				assert.Zero(t, got)
				assert.True(t, tt.a.Equal(tt.b))
			}
		})
	}
}

func TestNewMovie_NormalizesName(t *testing.T) {
	decomposed := NewMovie("  Ame\u0301lie ", 2001, GenreRomance)
	precomposed := NewMovie("Am\u00e9lie", 2001, GenreRomance)

	assert.Equal(t, "Am\u00e9lie", decomposed.Name)
	assert.True(t, decomposed.Equal(precomposed))
}

func TestMovie_Validate(t *testing.T) {
	assert.NoError(t, NewMovie("Inception", 2010, GenreSciFi).Validate())
	assert.ErrorIs(t, NewMovie("   ", 2010, GenreSciFi).Validate(), errs.ErrValidation)
	assert.ErrorIs(t, NewMovie("Inception", 2010, Genre("Noir")).Validate(), errs.ErrValidation)
}

func TestMovie_ValidateRejectsControlCharacters(t *testing.T) {
	for _, name := range []string{"Bell\aMovie", "Two\r\nLines", "Tab\tbed", "Nul\x00", "Del\x7f", "C1\u0085"} {
		t.Run(strconv.Quote(name), func(t *testing.T) {
			err := NewMovie(name, 2000, GenreDrama).Validate()
			var verr *errs.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "name", verr.Field)
		})
	}

	assert.NoError(t, NewMovie("Amélie: Le Fabuleux Destin", 2001, GenreRomance).Validate())
}

func TestMovie_ValidateIgnoresYearRange(t *testing.T) {
	assert.NoError(t, NewMovie("Metropolis", 500, GenreSciFi).Validate())
}

func TestMovie_String(t *testing.T) {
	assert.Equal(t, "Inception (2010, Sci-Fi)", NewMovie("Inception", 2010, GenreSciFi).String())
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"2010", 2010, false},
		{" 1000 ", 1000, false},
		{"3000", 3000, false},
		{"abc", 0, true},
		{"500", 0, true},
		{"999", 0, true},
		{"3001", 0, true},
		{"", 0, true},
		{"20.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseYear(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGenre(t *testing.T) {
	g, err := ParseGenre("sci-fi")
	require.NoError(t, err)
	assert.Equal(t, GenreSciFi, g)

	g, err = ParseGenre("  Drama ")
	require.NoError(t, err)
	assert.Equal(t, GenreDrama, g)

	for _, bad := range []string{"", GenrePlaceholder, "Noir"} {
		_, err := ParseGenre(bad)
		assert.ErrorIs(t, err, errs.ErrValidation, "input %q", bad)
	}
}

func TestGenres_ReturnsCopy(t *testing.T) {
	list := Genres()
	require.NotEmpty(t, list)
	list[0] = "Changed"
	assert.Equal(t, GenreAction, Genres()[0])
}

func TestParseMovie(t *testing.T) {
	m, err := ParseMovie("Inception", "2010", "Sci-Fi")
	require.NoError(t, err)
	assert.Equal(t, NewMovie("Inception", 2010, GenreSciFi), m)

	tests := []struct {
		name, movieName, year, genre string
		field                        string
	}{
		{"empty name", "", "2010", "Sci-Fi", "name"},
		{"control character in name", "Bell\aMovie", "2010", "Sci-Fi", "name"},
		{"line break in name", "Two\r\nLines", "2010", "Sci-Fi", "name"},
		{"bad year", "Inception", "abc", "Sci-Fi", "release year"},
		{"year out of range", "Inception", "500", "Sci-Fi", "release year"},
		{"placeholder genre", "Inception", "2010", GenrePlaceholder, "genre"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMovie(tt.movieName, tt.year, tt.genre)
			var verr *errs.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
