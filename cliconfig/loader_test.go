package cliconfig_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/buildkite/jenkins-tail/cliconfig"
	"github.com/google/go-cmp/cmp"
	"github.com/urfave/cli"
)

type testConfig struct {
	Job          string        `cli:"arg:0" env:"TEST_JOB,TEST_JOB_LEGACY" label:"job" validate:"required"`
	BaseURL      string        `cli:"base-url" normalize:"trim" validate:"required"`
	Build        string        `cli:"build"`
	Retries      int           `cli:"retries"`
	Timeout      time.Duration `cli:"timeout"`
	Debug        bool          `cli:"debug"`
	Experiments  []string      `cli:"experiment" normalize:"list"`
	OldBuildFlag string        `cli:"old-build" deprecated-and-renamed-to:"Build"`
}

func testFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{Name: "config"},
		cli.StringFlag{Name: "base-url", EnvVar: "TEST_BASE_URL,TEST_BASE_URL_LEGACY"},
		cli.StringFlag{Name: "build", Value: "lastBuild"},
		cli.StringFlag{Name: "old-build", Hidden: true},
		cli.IntFlag{Name: "retries"},
		cli.DurationFlag{Name: "timeout", Value: time.Second},
		cli.BoolFlag{Name: "debug"},
		cli.StringSliceFlag{Name: "experiment", Value: &cli.StringSlice{}},
	}
}

// load runs args through a urfave/cli app and loads them into a testConfig.
func load(t *testing.T, args ...string) (testConfig, []string, error) {
	t.Helper()

	var cfg testConfig
	var warnings []string
	var loadErr error

	app := cli.NewApp()
	app.Name = "jenkins-tail"
	app.Writer = &strings.Builder{}
	app.ErrWriter = &strings.Builder{}
	app.Commands = []cli.Command{{
		Name:  "test",
		Flags: testFlags(),
		Action: func(c *cli.Context) error {
			loader := cliconfig.Loader{CLI: c, Config: &cfg}
			warnings, loadErr = loader.Load()
			return nil
		},
	}}

	if err := app.Run(append([]string{"jenkins-tail", "test"}, args...)); err != nil {
		t.Fatalf("app.Run() error = %v", err)
	}
	return cfg, warnings, loadErr
}

func TestLoaderFlagsAndArgs(t *testing.T) {
	cfg, warnings, err := load(t,
		"--base-url", " https://ci.example.com ",
		"--retries", "3",
		"--timeout", "1m",
		"--debug",
		"--experiment", "a,b",
		"--experiment", "c",
		"team/app",
	)
	if err != nil {
		t.Fatalf("loader.Load() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("loader.Load() warnings = %v, want none", warnings)
	}

	want := testConfig{
		Job:         "team/app",
		BaseURL:     "https://ci.example.com",
		Build:       "lastBuild",
		Retries:     3,
		Timeout:     time.Minute,
		Debug:       true,
		Experiments: []string{"a", "b", "c"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("loaded config diff (-want +got):\n%s", diff)
	}
}

func TestLoaderEnv(t *testing.T) {
	t.Setenv("TEST_JOB_LEGACY", "legacy-job")
	t.Setenv("TEST_BASE_URL_LEGACY", "https://legacy.example.com")

	cfg, _, err := load(t)
	if err != nil {
		t.Fatalf("loader.Load() error = %v", err)
	}

	if got, want := cfg.Job, "legacy-job"; got != want {
		t.Errorf("cfg.Job = %q, want %q", got, want)
	}
	if got, want := cfg.BaseURL, "https://legacy.example.com"; got != want {
		t.Errorf("cfg.BaseURL = %q, want %q", got, want)
	}
}

func TestLoaderRequired(t *testing.T) {
	_, _, err := load(t, "--base-url", "https://ci.example.com")
	if err == nil {
		t.Fatal("loader.Load() error = nil, want an error for the missing job")
	}
	if !strings.Contains(err.Error(), "Missing job.") {
		t.Errorf("loader.Load() error = %q, want it to mention the missing job", err)
	}
}

func TestLoaderConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jenkins-tail.cfg")
	contents := strings.Join([]string{
		"# Jenkins to follow",
		`base-url="https://file.example.com"`,
		"build: 42",
		"retries=2",
		"timeout=30s",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("os.WriteFile error = %v", err)
	}

	cfg, _, err := load(t, "--config", path, "--retries", "5", "app")
	if err != nil {
		t.Fatalf("loader.Load() error = %v", err)
	}

	want := testConfig{
		Job:         "app",
		BaseURL:     "https://file.example.com",
		Build:       "42",
		Retries:     5, // flags win over the file
		Timeout:     30 * time.Second,
		Experiments: []string{},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("loaded config diff (-want +got):\n%s", diff)
	}
}

func TestLoaderMissingConfigFile(t *testing.T) {
	_, _, err := load(t, "--config", filepath.Join(t.TempDir(), "missing.cfg"), "app")
	if err == nil || !strings.Contains(err.Error(), "could not be found") {
		t.Errorf("loader.Load() error = %v, want a missing config file error", err)
	}
}

func TestLoaderDeprecatedRename(t *testing.T) {
	cfg, warnings, err := load(t, "--base-url", "https://ci.example.com", "--build", "", "--old-build", "7", "app")
	if err != nil {
		t.Fatalf("loader.Load() error = %v", err)
	}

	if got, want := cfg.Build, "7"; got != want {
		t.Errorf("cfg.Build = %q, want %q", got, want)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "renamed to `build`") {
		t.Errorf("loader.Load() warnings = %v, want one rename warning", warnings)
	}
}
