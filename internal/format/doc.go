// Package format converts movie collections to and from files.
//
// # Formats
//
// Four formats are supported, identified by the Format enum:
//   - FormatCSV: one "name,year,genre" line per movie, no header
//   - FormatBinary: checksummed, length-prefixed records (see binary.go)
//   - FormatXML: a <movies> root with one <movie> element per entry
//   - FormatSQLite: a single "movies" table
//
// # Adapters
//
// Every format is served by an Adapter with the same contract:
//
//	reg := format.DefaultRegistry(format.Options{})
//	a, _ := reg.Adapter(format.FormatXML)
//
//	err := a.Save(ctx, "/data/movies.xml", movies)
//	loaded, err := a.Load(ctx, "/data/movies.xml")
//
// Saves are atomic: a failed save never leaves a partial destination. Load
// errors wrap errs.ErrNotFound, errs.ErrIO or errs.ErrParse. Any malformed
// record fails the whole load.
//
// # Export
//
// ExportAll writes one collection to several targets concurrently:
//
//	err := format.ExportAll(ctx, reg, movies, []format.Target{
//	    {Format: format.FormatCSV, Path: "movies.csv"},
//	    {Format: format.FormatBinary, Path: "movies.bin"},
//	})
package format
