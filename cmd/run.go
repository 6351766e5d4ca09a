package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/forecast"
	"github.com/etnz/forecast/date"
	"github.com/etnz/forecast/renderer"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	configFile string
	verbose    bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run a forecast and print its timeline" }
func (*runCmd) Usage() string {
	return `fcs run [-c <config>] [-v]

  Runs the forecast described by the config file, one day at a time, printing
  net worth at the configured cadence and a full summary at the end. A run that
  ends in insolvency prints the final state and exits with a failure status.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "c", "forecast.yaml", "Path to the forecast config file")
	f.BoolVar(&c.verbose, "v", false, "Log every simulated money movement")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(c.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	sim, err := forecast.NewSimulation(cfg, newLogger(c.verbose))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	window := date.Range{From: sim.Today(), To: cfg.Output.EndDate}
	if cfg.Output.StartDate != nil {
		window.From = *cfg.Output.StartDate
	}

	// The timeline streams: each report prints as its day is simulated, so a
	// decades-long run shows progress instead of going silent until the end.
	lastPrint := date.Date{}
	for !sim.Done() {
		today := sim.Today()
		if window.Contains(today) && (lastPrint == date.Date{} || cfg.Output.Cadence.Elapsed(lastPrint, today)) {
			printMarkdown(renderer.NetWorth(sim.Report()))
			lastPrint = today
		}

		if err := sim.Step(); err != nil {
			if ife, ok := forecast.AsInsufficientFunds(err); ok {
				printMarkdown(renderer.Insolvency(sim.Report(), ife.Needed))
				printMarkdown(renderer.Summary(sim.Report()))
			} else {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			return subcommands.ExitFailure
		}
	}

	printMarkdown(renderer.Summary(sim.Report()))
	return subcommands.ExitSuccess
}
