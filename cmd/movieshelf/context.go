package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/handiism/movieshelf/internal/collection"
	"github.com/handiism/movieshelf/internal/config"
	"github.com/handiism/movieshelf/internal/format"
	"github.com/handiism/movieshelf/internal/logging"
	"github.com/handiism/movieshelf/internal/session"
)

type globalFlags struct {
	config   string
	logLevel string
	format   format.Format
}

type commandContext struct {
	flags *globalFlags

	settingsOnce sync.Once
	settings     *config.Settings
	settingsErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) configPath() (string, error) {
	if path := strings.TrimSpace(c.flags.config); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

func (c *commandContext) ensureSettings() (*config.Settings, error) {
	c.settingsOnce.Do(func() {
		path, err := c.configPath()
		if err != nil {
			c.settingsErr = err
			return
		}
		c.settings, c.settingsErr = config.Load(path)
	})
	return c.settings, c.settingsErr
}

func (c *commandContext) logger(cmd *cobra.Command) zerolog.Logger {
	settings, err := c.ensureSettings()
	if err != nil {
		return logging.Nop
	}
	level := settings.LogLevel
	if c.flags.logLevel != "" {
		level = c.flags.logLevel
	}
	return logging.New(logging.Config{
		Level:  level,
		Format: settings.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
}

func (c *commandContext) registry() (*format.Registry, error) {
	settings, err := c.ensureSettings()
	if err != nil {
		return nil, err
	}
	return format.DefaultRegistry(settings.FormatOptions()), nil
}

// newSession builds an empty session wired to the configured registry.
func (c *commandContext) newSession(cmd *cobra.Command) (*session.Session, error) {
	settings, err := c.ensureSettings()
	if err != nil {
		return nil, err
	}
	reg, err := c.registry()
	if err != nil {
		return nil, err
	}
	return session.New(collection.New(), reg,
		session.WithLogger(c.logger(cmd)),
		session.WithDataDir(settings.DataDir),
		session.WithDemoFile(settings.DemoFile),
	), nil
}

// formatFor resolves the format of path: --format wins, then the file
// extension.
func (c *commandContext) formatFor(cmd *cobra.Command, path string) (format.Format, error) {
	if cmd.Flags().Changed("format") {
		return c.flags.format, nil
	}
	f, err := format.FromPath(path)
	if err != nil {
		return 0, fmt.Errorf("%w (use --format)", err)
	}
	return f, nil
}

// openSession loads path into a new session. When allowMissing is set, a
// missing or empty file starts an empty collection instead of failing.
func (c *commandContext) openSession(cmd *cobra.Command, path string, allowMissing bool) (*session.Session, format.Format, error) {
	f, err := c.formatFor(cmd, path)
	if err != nil {
		return nil, 0, err
	}
	sess, err := c.newSession(cmd)
	if err != nil {
		return nil, 0, err
	}

	if allowMissing {
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			sess.NewSession()
			return sess, f, nil
		}
	}

	res := sess.OnLoad(cmd.Context(), f, path)
	switch {
	case res.Err != nil:
		return nil, 0, resultError(res)
	case res.Failed() && allowMissing:
		sess.NewSession()
	case res.Failed():
		return nil, 0, errors.New(res.Message)
	}
	return sess, f, nil
}

// report prints a successful or informational result and turns failures
// into errors.
func report(out io.Writer, res session.Result) error {
	if res.Err != nil {
		return resultError(res)
	}
	if res.Failed() {
		return errors.New(res.Message)
	}
	if res.Message != "" {
		fmt.Fprintln(out, res.Message)
	}
	return nil
}

func resultError(res session.Result) error {
	return fmt.Errorf("%s: %w", res.Message, res.Err)
}
