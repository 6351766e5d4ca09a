// Package cmd implements the CLI application to run financial forecasts.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/etnz/forecast"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&runCmd{},
	&checkCmd{},
	&initCmd{},
}

// printMarkdown renders markdown for the terminal when stdout is one, and
// prints it raw otherwise (pipes, redirects).
func printMarkdown(md string) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// newLogger builds the console logger the simulation reports through.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// loadConfig reads and validates the config file shared by all subcommands.
func loadConfig(path string) (*forecast.Config, error) {
	cfg, err := forecast.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}
