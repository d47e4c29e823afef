package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/movieshelf/internal/config"
	"github.com/handiism/movieshelf/internal/errs"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	settings := config.DefaultSettings()
	settings.DataDir = filepath.Join(base, "data")
	settings.LogLevel = "error"
	settings.LogFormat = "json"

	configPath := filepath.Join(base, "config.toml")
	require.NoError(t, settings.Save(configPath))

	return &cliTestEnv{baseDir: base, configPath: configPath}
}

func (e *cliTestEnv) path(name string) string {
	return filepath.Join(e.baseDir, name)
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func addMovie(t *testing.T, env *cliTestEnv, file, name, year, genre string) string {
	t.Helper()
	out, _, err := runCLI(t, env, "add", file, "--name", name, "--year", year, "--genre", genre)
	require.NoError(t, err)
	return out
}

func TestAddAndList(t *testing.T) {
	env := setupCLITestEnv(t)
	file := env.path("movies.csv")

	out := addMovie(t, env, file, "Inception", "2010", "Sci-Fi")
	assert.Contains(t, out, "Movie added: Inception")
	assert.Contains(t, out, "Movie data saved as CSV!")

	addMovie(t, env, file, "Heat", "1995", "crime")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "Heat,1995,Crime\nInception,2010,Sci-Fi\n", string(data))

	out, _, err = runCLI(t, env, "list", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Heat")
	assert.Contains(t, out, "Inception")
	assert.Less(t, strings.Index(out, "Heat"), strings.Index(out, "Inception"))
}

func TestAdd_InvalidInput(t *testing.T) {
	env := setupCLITestEnv(t)
	file := env.path("movies.xml")

	_, _, err := runCLI(t, env, "add", file, "--name", "Heat", "--year", "99999", "--genre", "Crime")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Contains(t, err.Error(), "Invalid release year!")

	_, statErr := os.Stat(file)
	assert.True(t, os.IsNotExist(statErr), "nothing is saved after a rejected add")
}

func TestAdd_RejectsControlCharactersInName(t *testing.T) {
	env := setupCLITestEnv(t)
	file := env.path("movies.xml")

	_, _, err := runCLI(t, env, "add", file, "--name", "Bell\aMovie", "--year", "1999", "--genre", "Drama")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.NoFileExists(t, file)
}

func TestAdd_FormatFlagOverridesExtension(t *testing.T) {
	env := setupCLITestEnv(t)
	file := env.path("movies.dat")

	addMovie(t, env, file, "Heat", "1995", "Crime")
	_, _, err := runCLI(t, env, "--format", "xml", "add", file, "--name", "Alien", "--year", "1979", "--genre", "Horror")
	require.Error(t, err, "a binary file does not parse as XML")
	assert.ErrorIs(t, err, errs.ErrParse)

	out, _, err := runCLI(t, env, "--format", "binary", "list", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Heat")
}

func TestRemove(t *testing.T) {
	env := setupCLITestEnv(t)
	file := env.path("movies.bin")
	addMovie(t, env, file, "Heat", "1995", "Crime")
	addMovie(t, env, file, "Alien", "1979", "Horror")

	out, _, err := runCLI(t, env, "remove", file, "-n", "Heat", "-y", "1995", "-g", "Crime")
	require.NoError(t, err)
	assert.Contains(t, out, "Heat has been deleted.")

	out, _, err = runCLI(t, env, "list", file)
	require.NoError(t, err)
	assert.NotContains(t, out, "Heat")
	assert.Contains(t, out, "Alien")

	_, _, err = runCLI(t, env, "remove", file, "-n", "Heat", "-y", "1995", "-g", "Crime")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, _, err = runCLI(t, env, "remove", file, "-n", "Alien", "-y", "1979", "-g", "Horror")
	assert.ErrorContains(t, err, "only movie")
}

func TestFind(t *testing.T) {
	env := setupCLITestEnv(t)
	file := env.path("movies.db")
	addMovie(t, env, file, "Inception", "2010", "Sci-Fi")
	addMovie(t, env, file, "Heat", "1995", "Crime")

	out, _, err := runCLI(t, env, "find", file, "incepton")
	require.NoError(t, err)
	assert.Contains(t, out, "Inception")
	assert.NotContains(t, out, "Heat")

	out, _, err = runCLI(t, env, "find", file, "zzzzzzzzzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No movies match")
}

func TestConvert(t *testing.T) {
	env := setupCLITestEnv(t)
	src := env.path("movies.csv")
	addMovie(t, env, src, "Inception", "2010", "Sci-Fi")
	addMovie(t, env, src, "Heat", "1995", "Crime")

	xmlPath, binPath, dbPath := env.path("out.xml"), env.path("out.bin"), env.path("out.db")
	out, _, err := runCLI(t, env, "convert", src, xmlPath, binPath, dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 movies as XML")

	for _, p := range []string{xmlPath, binPath, dbPath} {
		out, _, err := runCLI(t, env, "list", p)
		require.NoError(t, err, p)
		assert.Contains(t, out, "Inception")
		assert.Contains(t, out, "Heat")
	}

	_, _, err = runCLI(t, env, "convert", src, env.path("out.json"))
	assert.ErrorContains(t, err, "unknown format")
}

func TestList_Errors(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env, "list", env.path("missing.csv"))
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.ErrorContains(t, err, "Error occurred while loading movie set from CSV file!")

	bad := env.path("bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("Heat;1995\n"), 0o644))
	_, _, err = runCLI(t, env, "list", bad)
	assert.ErrorIs(t, err, errs.ErrParse)

	_, _, err = runCLI(t, env, "list", env.path("movies"))
	assert.ErrorContains(t, err, "--format")
}

func TestDemo(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := env.path("demo")

	out, _, err := runCLI(t, env, "demo", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Movie set loaded from CSV")
	assert.Contains(t, out, "The Godfather")
	assert.FileExists(t, filepath.Join(dir, "demo_movies.csv"))
}

func TestGenres(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "genres")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 17)
	assert.Equal(t, "Action", lines[0])
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)
	target := env.path("nested/config.toml")

	out, _, err := runCLI(t, env, "config", "init", "--path", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote default configuration")
	assert.FileExists(t, target)

	_, _, err = runCLI(t, env, "config", "init", "--path", target)
	assert.ErrorContains(t, err, "already exists")

	out, _, err = runCLI(t, env, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, env.configPath)
	assert.Regexp(t, `default_format = ['"]csv['"]`, out)
	assert.Contains(t, out, filepath.Join(env.baseDir, "data"))
}

func TestConfig_InvalidFile(t *testing.T) {
	env := setupCLITestEnv(t)
	require.NoError(t, os.WriteFile(env.configPath, []byte("csv_delimiter = ';;'\n"), 0o644))

	_, _, err := runCLI(t, env, "list", env.path("movies.csv"))
	assert.ErrorContains(t, err, "csv_delimiter")
}
