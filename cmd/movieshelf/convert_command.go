package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/movieshelf/internal/format"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "convert SOURCE TARGET...",
		Short: "Save a collection in other formats",
		Long: "Load SOURCE and write it to every TARGET concurrently. Target formats\n" +
			"are taken from their extensions; --format applies to SOURCE only.",
		Example: "  movieshelf convert movies.csv movies.xml movies.bin movies.db",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := make([]format.Target, 0, len(args)-1)
			for _, path := range args[1:] {
				t, err := format.TargetFromPath(path)
				if err != nil {
					return fmt.Errorf("target %s: %w", path, err)
				}
				targets = append(targets, t)
			}

			sess, _, err := ctx.openSession(cmd, args[0], false)
			if err != nil {
				return err
			}
			reg, err := ctx.registry()
			if err != nil {
				return err
			}

			movies := sess.Movies()
			if err := format.ExportAll(cmd.Context(), reg, movies, targets); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, t := range targets {
				fmt.Fprintf(out, "Wrote %s as %s to %s\n", plural(len(movies), "movie"), t.Format.Title(), t.Path)
			}
			return nil
		},
	}
}
