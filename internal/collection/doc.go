// Package collection holds the in-memory movie set.
//
// A Collection is the single source of truth for a session. It keeps its
// movies sorted by model.Compare and never stores two equal entries:
//
//	c := collection.New()
//	c.Add(model.NewMovie("Inception", 2010, model.GenreSciFi))
//	c.Add(model.NewMovie("Inception", 2010, model.GenreSciFi)) // no-op
//	c.Len() // 1
//
// After a successful load, Replace installs the loaded movies in one step.
package collection
