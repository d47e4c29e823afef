// Package ioutils provides file system utilities.
//
// # Atomic Writes
//
// Every movie file is written through WriteFileAtomic or ReplaceFile so a
// failed save never leaves a half-written destination:
//
//	err := ioutils.WriteFileAtomic(ctx, "/data/movies.csv", func(w io.Writer) error {
//	    return encode(w, movies)
//	})
//
// The data goes to a hidden temporary file next to the destination, which is
// renamed over it only after the write, flush and sync all succeed. An
// advisory lock on "<path>.lock" serializes concurrent writers.
//
// # Filename Sanitization
//
// Use SanitizeFileName to derive file names from user input:
//
//	safe := ioutils.SanitizeFileName("Movies: 2024/25") // Returns "Movies_ 2024_25"
package ioutils
