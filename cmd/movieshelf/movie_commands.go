package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/movieshelf/internal/model"
)

type movieFlags struct {
	name  string
	year  string
	genre string
}

func (f *movieFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "Movie name")
	cmd.Flags().StringVarP(&f.year, "year", "y", "", "Release year")
	cmd.Flags().StringVarP(&f.genre, "genre", "g", "", "Genre (see 'movieshelf genres')")
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE",
		Short: "Show the movies in a collection file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := ctx.openSession(cmd, args[0], false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderMovies(out, sess.Movies()))
			return nil
		},
	}
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var flags movieFlags

	cmd := &cobra.Command{
		Use:   "add FILE",
		Short: "Add a movie to a collection file, creating it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			sess, f, err := ctx.openSession(cmd, path, true)
			if err != nil {
				return err
			}

			_, res := sess.OnAdd(flags.name, flags.year, flags.genre)
			if res.Failed() {
				return report(cmd.OutOrStdout(), res)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Message)
			return report(out, sess.OnSave(cmd.Context(), f, path))
		},
	}
	flags.register(cmd)
	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var flags movieFlags

	cmd := &cobra.Command{
		Use:   "remove FILE",
		Short: "Remove a movie from a collection file",
		Long: "Remove a movie from a collection file.\n\n" +
			"The movie is matched on name, release year and genre. Removing the last\n" +
			"movie is refused since empty collections are never saved.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			movie, err := flags.movie()
			if err != nil {
				return err
			}

			sess, f, err := ctx.openSession(cmd, path, false)
			if err != nil {
				return err
			}
			if sess.Len() == 1 && sess.Movies()[0].Equal(movie) {
				return fmt.Errorf("%s is the only movie in %s; delete the file instead", movie.Name, path)
			}

			res := sess.OnDelete(movie)
			if res.Failed() {
				return report(cmd.OutOrStdout(), res)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Message)
			return report(out, sess.OnSave(cmd.Context(), f, path))
		},
	}
	flags.register(cmd)
	return cmd
}

// movie builds the record to match. The year range is not checked so
// records loaded from files outside it can still be removed.
func (f *movieFlags) movie() (model.Movie, error) {
	name := model.NormalizeName(f.name)
	if name == "" {
		return model.Movie{}, errors.New("--name is required")
	}
	year, err := strconv.Atoi(strings.TrimSpace(f.year))
	if err != nil {
		return model.Movie{}, fmt.Errorf("--year: %q is not a number", f.year)
	}
	genre, err := model.ParseGenre(f.genre)
	if err != nil {
		return model.Movie{}, fmt.Errorf("--genre: %w", err)
	}
	return model.NewMovie(name, year, genre), nil
}

func newFindCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "find FILE QUERY",
		Short: "Search a collection by name, tolerating small typos",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := ctx.openSession(cmd, args[0], false)
			if err != nil {
				return err
			}
			matches := sess.Find(args[1])
			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintf(out, "No movies match %q\n", args[1])
				return nil
			}
			fmt.Fprintln(out, renderMovies(out, matches))
			return nil
		},
	}
}

func newGenresCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "genres",
		Short:       "List the supported genres",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, g := range model.Genres() {
				fmt.Fprintln(out, g)
			}
			return nil
		},
	}
}
