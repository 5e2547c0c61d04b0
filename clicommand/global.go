package clicommand

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/buildkite/jenkins-tail/internal/osutil"
	"github.com/buildkite/jenkins-tail/logger"
	"github.com/urfave/cli"
)

const envPrefix = "JENKINS_TAIL_"

var ConfigFlag = cli.StringFlag{
	Name:   "config",
	Value:  "",
	Usage:  "Path to a configuration file",
	EnvVar: envPrefix + "CONFIG",
}

var DebugFlag = cli.BoolFlag{
	Name:   "debug",
	Usage:  "Enable debug mode. Synonym for `--log-level debug`. Takes precedence over `--log-level`",
	EnvVar: envPrefix + "DEBUG",
}

var LogLevelFlag = cli.StringFlag{
	Name:   "log-level",
	Value:  "notice",
	Usage:  "Set the log level, valid values are: debug, info, notice, warn, error, fatal",
	EnvVar: envPrefix + "LOG_LEVEL",
}

var LogFormatFlag = cli.StringFlag{
	Name:   "log-format",
	Value:  "text",
	Usage:  "The format to use for log output, either text or json",
	EnvVar: envPrefix + "LOG_FORMAT",
}

var NoColorFlag = cli.BoolFlag{
	Name:   "no-color",
	Usage:  "Don't show colors in logging",
	EnvVar: envPrefix + "NO_COLOR",
}

type GlobalConfig struct {
	Config    string `cli:"config" normalize:"filepath"`
	Debug     bool   `cli:"debug"`
	LogLevel  string `cli:"log-level"`
	LogFormat string `cli:"log-format"`
	NoColor   bool   `cli:"no-color"`
	Profile   string `cli:"profile"`
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		ConfigFlag,
		NoColorFlag,
		DebugFlag,
		LogLevelFlag,
		LogFormatFlag,
		ProfileFlag,
	}
}

// DefaultConfigFilePaths returns the config files looked for when --config
// isn't given, in order of preference.
func DefaultConfigFilePaths() []string {
	var paths []string
	if home, err := osutil.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".jenkins-tail.cfg"))
	}
	return append(paths, "/etc/jenkins-tail/jenkins-tail.cfg")
}

// CreateLogger returns a logger writing to w, configured by cfg.
func CreateLogger(cfg GlobalConfig, w io.Writer) (logger.Logger, error) {
	var printer logger.Printer
	switch cfg.LogFormat {
	case "text", "":
		tp := logger.NewTextPrinter(w)
		if cfg.NoColor || w != os.Stderr {
			tp.Colors = false
		}
		printer = tp
	case "json":
		printer = logger.NewJSONPrinter(w)
	default:
		return nil, fmt.Errorf("invalid log format %q, must be text or json", cfg.LogFormat)
	}

	l := logger.NewConsoleLogger(printer, os.Exit)

	level := logger.NOTICE
	if cfg.LogLevel != "" {
		var err error
		level, err = logger.LevelFromString(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
	}
	if cfg.Debug {
		level = logger.DEBUG
	}
	l.SetLevel(level)

	return l, nil
}
