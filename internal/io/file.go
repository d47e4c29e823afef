// Package ioutils provides file system utilities for movieshelf.
//
// This package contains functions for:
//   - Atomic file replacement (write to a temp file, then rename)
//   - Filename sanitization
//   - Directory creation
//
// All functions that accept a context.Context respect cancellation while
// waiting for the destination lock, though file operations themselves may
// not be interruptible.
package ioutils

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const (
	lockSuffix     = ".lock"
	lockRetryDelay = 50 * time.Millisecond
)

// ErrLocked is returned when the destination lock could not be acquired.
var ErrLocked = errors.New("destination is locked by another writer")

// ReplaceFile atomically replaces path with a file produced by build.
//
// build receives the path of a fresh temporary file in the same directory
// as path and must create it. On success the temporary file is renamed over
// path. On any failure, including a panic in build, the temporary file is
// removed and path is left untouched.
//
// While the replacement runs, an advisory lock is held on path+".lock" so
// two writers never interleave on the same destination. The lock file is
// left in place after the save; removing it would let a waiting writer lock
// an unlinked file while a newcomer locks a fresh one.
//
// Example:
//
//	err := ReplaceFile(ctx, "/data/movies.db", func(tmp string) error {
//	    return buildDatabase(tmp)
//	})
func ReplaceFile(ctx context.Context, path string, build func(tmpPath string) error) (err error) {
	lock := flock.New(path + lockSuffix)
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	if !locked {
		return fmt.Errorf("lock %s: %w", path, ErrLocked)
	}
	defer func() { _ = lock.Unlock() }()

	tmp := tempPath(path)
	defer func() {
		if r := recover(); r != nil {
			_ = os.Remove(tmp)
			panic(r)
		}
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = build(tmp); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// WriteFileAtomic writes a file through a buffered writer and atomically
// moves it into place.
//
// The file is created with mode 0644, flushed and synced before the rename.
// If write returns an error, the destination is not modified.
//
// Example:
//
//	err := WriteFileAtomic(ctx, "/data/movies.csv", func(w io.Writer) error {
//	    _, err := io.WriteString(w, "Inception,2010,Sci-Fi\n")
//	    return err
//	})
func WriteFileAtomic(ctx context.Context, path string, write func(w io.Writer) error) error {
	return ReplaceFile(ctx, path, func(tmp string) error {
		f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()

		bw := bufio.NewWriter(f)
		if err := write(bw); err != nil {
			return err
		}
		if err := bw.Flush(); err != nil {
			return err
		}
		if err := f.Sync(); err != nil {
			return err
		}
		return f.Close()
	})
}

// WriteFile writes data to path atomically. See WriteFileAtomic.
func WriteFile(ctx context.Context, path string, data []byte) error {
	return WriteFileAtomic(ctx, path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// tempPath returns a hidden, unique sibling of path.
func tempPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")
}

var (
	invalidChars  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots  = regexp.MustCompile(`\.+$`)
	multipleSpace = regexp.MustCompile(`\s+`)
)

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Surrounding whitespace → removed
//
// Example:
//
//	SanitizeFileName("Movies: 2024/25") // Returns "Movies_ 2024_25"
//	SanitizeFileName("Watchlist...")    // Returns "Watchlist"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = multipleSpace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
