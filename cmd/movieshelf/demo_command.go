package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/handiism/movieshelf/internal/session"
)

func newDemoCommand(ctx *commandContext) *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write the demonstration collection and show it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			reg, err := ctx.registry()
			if err != nil {
				return err
			}
			if dataDir == "" {
				dataDir = settings.DataDir
			}

			sess := session.New(nil, reg,
				session.WithLogger(ctx.logger(cmd)),
				session.WithDataDir(dataDir),
				session.WithDemoFile(settings.DemoFile),
			)
			out := cmd.OutOrStdout()
			if err := report(out, sess.OpenDemo(cmd.Context())); err != nil {
				return err
			}
			fmt.Fprintf(out, "Demo collection written to %s\n", filepath.Join(dataDir, settings.DemoFile))
			fmt.Fprintln(out, renderMovies(out, sess.Movies()))
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "dir", "", "Directory for the demo file (defaults to data_dir)")
	return cmd
}
