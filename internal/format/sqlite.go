package format

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/handiism/movieshelf/internal/errs"
	ioutils "github.com/handiism/movieshelf/internal/io"
	"github.com/handiism/movieshelf/internal/model"
)

const sqliteSchemaVersion = 1

const sqliteSchema = `CREATE TABLE movies (
    name         TEXT    NOT NULL,
    release_year INTEGER NOT NULL,
    genre        TEXT    NOT NULL,
    PRIMARY KEY (name, release_year, genre)
)`

// SQLiteAdapter stores the collection in a single-table SQLite database.
//
// Saves build a fresh database in a temporary file and move it over the
// destination, so an existing database is replaced wholesale rather than
// merged.
type SQLiteAdapter struct{}

// NewSQLiteAdapter creates a SQLiteAdapter.
func NewSQLiteAdapter() *SQLiteAdapter {
	return &SQLiteAdapter{}
}

// Format implements Adapter.
func (a *SQLiteAdapter) Format() Format {
	return FormatSQLite
}

// Save implements Adapter.
func (a *SQLiteAdapter) Save(ctx context.Context, path string, movies []model.Movie) error {
	if err := validateMovies(movies); err != nil {
		return err
	}
	err := ioutils.ReplaceFile(ctx, path, func(tmp string) error {
		return writeDatabase(ctx, tmp, movies)
	})
	if err != nil {
		return saveError(path, err)
	}
	return nil
}

func writeDatabase(ctx context.Context, path string, movies []model.Movie) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", sqliteSchemaVersion)); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO movies (name, release_year, genre) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range movies {
		if _, err := stmt.ExecContext(ctx, m.Name, m.ReleaseYear, string(m.Genre)); err != nil {
			return fmt.Errorf("insert %s: %w", m, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return db.Close()
}

// Load implements Adapter.
func (a *SQLiteAdapter) Load(ctx context.Context, path string) ([]model.Movie, error) {
	// sql.Open would silently create a missing database.
	info, err := os.Stat(path)
	if err != nil {
		return nil, errs.NewIOError("open", path, err)
	}
	if info.IsDir() {
		return nil, errs.NewIOError("open", path, syscall.EISDIR)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errs.NewIOError("open", path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT name, release_year, genre FROM movies ORDER BY name, release_year, genre`)
	if err != nil {
		return nil, sqliteParseError(path, "query movies", err)
	}
	defer rows.Close()

	movies := []model.Movie{}
	for rows.Next() {
		var (
			name  string
			year  int
			genre string
		)
		if err := rows.Scan(&name, &year, &genre); err != nil {
			return nil, sqliteParseError(path, "scan movie", err)
		}
		g, err := model.ParseGenre(genre)
		if err != nil {
			return nil, sqliteParseError(path, "movie "+name, err)
		}
		m := model.NewMovie(name, year, g)
		if err := m.Validate(); err != nil {
			return nil, sqliteParseError(path, "movie "+name, err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, sqliteParseError(path, "read movies", err)
	}
	return movies, nil
}

func sqliteParseError(path, msg string, err error) error {
	return &errs.ParseError{Format: "sqlite", Path: path, Message: msg, Err: err}
}
