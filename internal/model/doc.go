// Package model defines the core data structures used throughout
// movieshelf.
//
// # Movie
//
// Movie is a single collection entry with a natural ordering:
//
//	m := model.NewMovie("Inception", 2010, model.GenreSciFi)
//	model.Compare(m, other) // name, then year, then genre
//
// # Input Validation
//
// Raw form input is validated with ParseMovie, which checks the name, the
// release year range (1000..3000) and the genre:
//
//	m, err := model.ParseMovie("Inception", "2010", "sci-fi")
//	if errors.Is(err, errs.ErrValidation) {
//	    // show the message to the user
//	}
//
// # Genres
//
// Genres returns the fixed list offered for selection. ParseGenre matches
// case-insensitively and rejects the "Select genre" placeholder.
package model
