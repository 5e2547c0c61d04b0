package clicommand

import (
	"context"
	"fmt"
	"os"

	"github.com/buildkite/jenkins-tail/cliconfig"
	"github.com/buildkite/jenkins-tail/logger"
	"github.com/oleiade/reflections"
	"github.com/urfave/cli"
)

// Action is a command action that receives its loaded config and a logger.
type Action[T any] func(
	ctx context.Context,
	c *cli.Context,
	l logger.Logger,
	cfg *T,
) error

// NewConfigAndLogger wraps f in a cli.ActionFunc that loads a T from the CLI
// context and config files, and creates a logger from T's GlobalConfig.
func NewConfigAndLogger[T any](f Action[T]) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg := new(T)

		loader := cliconfig.Loader{
			CLI:                    c,
			Config:                 cfg,
			DefaultConfigFilePaths: DefaultConfigFilePaths(),
		}
		warnings, err := loader.Load()
		if err != nil {
			return err
		}

		field, err := reflections.GetField(cfg, "GlobalConfig")
		if err != nil {
			return fmt.Errorf("%T has no GlobalConfig: %w", cfg, err)
		}
		global, ok := field.(GlobalConfig)
		if !ok {
			return fmt.Errorf("%T.GlobalConfig is a %T, not a GlobalConfig", cfg, field)
		}

		w := c.App.ErrWriter
		if w == nil {
			w = os.Stderr
		}

		l, err := CreateLogger(global, w)
		if err != nil {
			return err
		}

		// Now that we have a logger, log out the warnings that loading config generated
		for _, warning := range warnings {
			l.Warn("%s", warning)
		}

		if loader.File != nil {
			l.Debug("Loaded config file %s", loader.File.Path)
		}

		if global.Profile != "" {
			stop, err := Profile(l, global.Profile)
			if err != nil {
				return err
			}
			defer stop()
		}

		return f(context.Background(), c, l, cfg)
	}
}
