package collection

import (
	"slices"

	"github.com/handiism/movieshelf/internal/model"
)

// Collection is a sorted set of movies keyed by their natural ordering.
//
// A Collection never holds two movies that compare equal under
// model.Compare. The zero value is an empty, ready to use collection.
// Collection is not safe for concurrent mutation; it is owned by a single
// session.
type Collection struct {
	movies []model.Movie
}

// New creates a Collection holding the given movies. Duplicates are dropped.
func New(movies ...model.Movie) *Collection {
	c := &Collection{}
	c.Replace(movies)
	return c
}

// Add inserts m unless an equal movie is already present.
// Adding a duplicate is a silent no-op.
func (c *Collection) Add(m model.Movie) {
	i, found := c.search(m)
	if found {
		return
	}
	c.movies = slices.Insert(c.movies, i, m)
}

// Remove deletes m if present. Removing an absent movie is a no-op.
func (c *Collection) Remove(m model.Movie) {
	i, found := c.search(m)
	if !found {
		return
	}
	c.movies = slices.Delete(c.movies, i, i+1)
}

// Contains reports whether a movie equal to m is present.
func (c *Collection) Contains(m model.Movie) bool {
	_, found := c.search(m)
	return found
}

// All returns the movies in sorted order. The returned slice is a copy and
// may be modified freely.
func (c *Collection) All() []model.Movie {
	return slices.Clone(c.movies)
}

// Len returns the number of movies.
func (c *Collection) Len() int {
	return len(c.movies)
}

// IsEmpty reports whether the collection holds no movies.
func (c *Collection) IsEmpty() bool {
	return len(c.movies) == 0
}

// Replace swaps the entire contents for movies.
//
// The new contents are sorted and deduplicated before being installed, so a
// reader never observes a partially replaced collection.
func (c *Collection) Replace(movies []model.Movie) {
	next := slices.Clone(movies)
	slices.SortFunc(next, model.Compare)
	next = slices.CompactFunc(next, model.Movie.Equal)
	c.movies = next
}

// Clear removes every movie.
func (c *Collection) Clear() {
	c.movies = nil
}

func (c *Collection) search(m model.Movie) (int, bool) {
	return slices.BinarySearchFunc(c.movies, m, model.Compare)
}
