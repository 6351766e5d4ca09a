package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	configFile string
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate a forecast config file" }
func (*checkCmd) Usage() string {
	return `fcs check [-c <config>]

  Parses and validates the config file without running the forecast.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "c", "forecast.yaml", "Path to the forecast config file")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(c.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s is valid: %d accounts, %d bills, %d debts, %d income streams, %d assets\n",
		c.configFile, len(cfg.Accounts), len(cfg.Bills), len(cfg.Debts), len(cfg.Income), len(cfg.Assets))
	return subcommands.ExitSuccess
}
