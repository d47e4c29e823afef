package ioutils

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movies.csv")

	err := WriteFileAtomic(context.Background(), path, func(w io.Writer) error {
		_, err := io.WriteString(w, "Inception,2010,Sci-Fi\n")
		return err
	})
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Inception,2010,Sci-Fi\n", string(got))
	assertOnlyFile(t, dir, "movies.csv", "movies.csv.lock")
}

func TestWriteFileAtomic_FailureKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movies.csv")
	require.NoError(t, os.WriteFile(path, []byte("original\n"), 0o644))

	boom := errors.New("encode failed")
	err := WriteFileAtomic(context.Background(), path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(got))
	assertOnlyFile(t, dir, "movies.csv", "movies.csv.lock")
}

func TestWriteFileAtomic_FailureCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movies.xml")

	err := WriteFileAtomic(context.Background(), path, func(w io.Writer) error {
		return errors.New("nope")
	})
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
	assertOnlyFile(t, dir, "movies.xml.lock")
}

func TestWriteFileAtomic_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "movies.csv")

	err := WriteFile(context.Background(), path, []byte("x"))
	assert.Error(t, err)
}

func TestReplaceFile_PanicCleansUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movies.db")

	assert.Panics(t, func() {
		_ = ReplaceFile(context.Background(), path, func(tmp string) error {
			require.NoError(t, os.WriteFile(tmp, []byte("half"), 0o644))
			panic("boom")
		})
	})
	assertOnlyFile(t, dir, "movies.db.lock")
}

func TestReplaceFile_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movies.bin")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WriteFile(ctx, path, []byte("x"))
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReplaceFile_HeldLockExcludesWriter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movies.csv")
	require.NoError(t, WriteFile(context.Background(), path, []byte("first\n")))

	// The lock file survives the save, so a later holder locks the same inode
	// every writer will try.
	lockPath := path + lockSuffix
	require.FileExists(t, lockPath)
	held := flock.New(lockPath)
	require.NoError(t, held.Lock())
	defer held.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	err := WriteFile(ctx, path, []byte("second\n"))
	require.Error(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(got))

	require.NoError(t, held.Unlock())
	require.NoError(t, WriteFile(context.Background(), path, []byte("third\n")))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "third\n", string(got))
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"movies", "movies"},
		{"Movies: 2024/25", "Movies_ 2024_25"},
		{"file<with>brackets", "file_with_brackets"},
		{"file|with|pipes", "file_with_pipes"},
		{"file?with*wildcards", "file_with_wildcards"},
		{"Watchlist...", "Watchlist"},
		{"multiple   spaces", "multiple spaces"},
		{"  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.input))
		})
	}
}

func assertOnlyFile(t *testing.T, dir string, names ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	assert.ElementsMatch(t, names, got)
}
