// Package main is the entry point for prefedit.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtg01100/prefedit/internal/cli"
	"github.com/dtg01100/prefedit/internal/doctor"
	"github.com/dtg01100/prefedit/internal/tui"
)

var version = "dev"

type Config struct {
	ShowVersion bool
	SkipChecks  bool
	ConfigDir   string
}

type TUIRunner interface {
	Run() error
}

type defaultTUIRunner struct{}

func (d *defaultTUIRunner) Run() error {
	return tui.Run()
}

func parseFlags(args []string) (*Config, error) {
	fs := flag.NewFlagSet("prefedit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Print version and exit")
	skipChecks := fs.Bool("skip-checks", false, "Skip start-up checks")
	configDir := fs.String("config", "", "Custom config directory (overrides XDG_CONFIG_HOME)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &Config{
		ShowVersion: *showVersion,
		SkipChecks:  *skipChecks,
		ConfigDir:   *configDir,
	}, nil
}

func printVersion(w io.Writer, v string) {
	fmt.Fprintln(w, v)
}

func handleConfigDir(configDir string) error {
	if configDir == "" {
		return nil
	}

	resolvedDir := configDir
	if fi, err := os.Stat(configDir); err == nil && !fi.IsDir() {
		resolvedDir = filepath.Dir(configDir)
	}

	return os.Setenv("XDG_CONFIG_HOME", resolvedDir)
}

// runPreflightChecksTo prints the check results and fails on a critical
// failure. Passing runs stay quiet.
func runPreflightChecksTo(w io.Writer, results []doctor.CheckResult) error {
	if doctor.AllPassed(results) {
		return nil
	}

	fmt.Fprint(w, doctor.FormatResults(results))
	fmt.Fprintln(w)

	if doctor.HasCriticalFailure(results) {
		fmt.Fprintln(w, "Critical start-up check(s) failed. Cannot start the editor.")
		fmt.Fprintln(w, "Run 'prefedit doctor' after fixing the issues above.")
		return fmt.Errorf("critical pre-flight checks failed")
	}

	fmt.Fprintln(w, "⚠ Some optional checks failed. The editor will start, but some")
	fmt.Fprintln(w, "  features may not work correctly.")
	fmt.Fprintln(w)
	return nil
}

type AppDeps struct {
	Stdout       io.Writer
	Stderr       io.Writer
	RunChecks    func() []doctor.CheckResult
	NewTUIRunner func() TUIRunner
	ParseFlags   func(args []string) (*Config, error)
}

func DefaultAppDeps(stdout, stderr io.Writer) *AppDeps {
	return &AppDeps{
		Stdout: stdout,
		Stderr: stderr,
		RunChecks: func() []doctor.CheckResult {
			return doctor.Run(doctor.DefaultEnv())
		},
		NewTUIRunner: func() TUIRunner {
			return &defaultTUIRunner{}
		},
		ParseFlags: parseFlags,
	}
}

func runMainWithDeps(args []string, deps *AppDeps) int {
	cfg, err := deps.ParseFlags(args)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Error parsing flags: %v\n", err)
		return 2
	}

	if cfg.ShowVersion {
		printVersion(deps.Stdout, version)
		return 0
	}

	if err := handleConfigDir(cfg.ConfigDir); err != nil {
		fmt.Fprintf(deps.Stderr, "Error handling config directory: %v\n", err)
		return 1
	}

	if !cfg.SkipChecks {
		if err := runPreflightChecksTo(deps.Stdout, deps.RunChecks()); err != nil {
			return 1
		}
	}

	tui.Version = version

	runner := deps.NewTUIRunner()
	if err := runner.Run(); err != nil {
		fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func runMain(args []string, stdout, stderr io.Writer) int {
	return runMainWithDeps(args, DefaultAppDeps(stdout, stderr))
}

var cliCommands = map[string]bool{
	"list":       true,
	"get":        true,
	"set":        true,
	"reset":      true,
	"check":      true,
	"export":     true,
	"import":     true,
	"schema":     true,
	"doctor":     true,
	"help":       true,
	"completion": true,
}

// isCLI reports whether args select a command rather than the editor. The
// editor's own flags keep it in TUI mode.
func isCLI(args []string) bool {
	if len(args) == 0 {
		return false
	}
	first := args[0]
	if cliCommands[first] {
		return true
	}
	if !strings.HasPrefix(first, "-") {
		return false
	}
	for _, arg := range args {
		if cliCommands[arg] || arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

func main() {
	args := os.Args[1:]

	for _, arg := range args {
		if arg == "--version" || arg == "-v" {
			printVersion(os.Stdout, version)
			os.Exit(0)
		}
	}

	if isCLI(args) {
		cli.SetVersion(version)
		if err := cli.Execute(); err != nil {
			os.Exit(1)
		}
		os.Exit(0)
	}

	os.Exit(runMain(args, os.Stdout, os.Stderr))
}
