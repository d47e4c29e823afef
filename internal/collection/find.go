package collection

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/handiism/movieshelf/internal/model"
)

const maxLevenshteinDistance = 3

// Find returns the movies whose name matches query, in sorted order.
//
// A name matches when, after lowercasing and collapsing whitespace, it
// contains the query or lies within a small edit distance of it. An empty
// query matches nothing.
func (c *Collection) Find(query string) []model.Movie {
	q := normalizeForMatching(query)
	if q == "" {
		return nil
	}

	var found []model.Movie
	for _, m := range c.movies {
		name := normalizeForMatching(m.Name)
		if strings.Contains(name, q) || levenshtein.ComputeDistance(name, q) <= maxLevenshteinDistance {
			found = append(found, m)
		}
	}
	return found
}

func normalizeForMatching(s string) string {
	s = strings.ToLower(model.NormalizeName(s))
	return strings.Join(strings.Fields(s), " ")
}
