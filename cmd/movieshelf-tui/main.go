package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/movieshelf/internal/config"
	"github.com/handiism/movieshelf/internal/logging"
	"github.com/handiism/movieshelf/internal/tui"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "movieshelf-tui",
		Short:         "Edit movie collections in the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(configPath)
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			settings, err := config.Load(path)
			if err != nil {
				return err
			}

			// Log lines would corrupt the alternate screen, so they go to a
			// file or nowhere.
			var out io.Writer = io.Discard
			if settings.LogFile != "" {
				f, err := logging.OpenFile(settings.LogFile)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			logger := logging.New(logging.Config{
				Level:  settings.LogLevel,
				Format: "json",
				Output: out,
			})

			return tui.Run(settings, logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file path")
	return cmd
}
