package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// starterConfig is the file 'fcs init' writes: a small but complete example
// covering accounts, a bill, an income stream and the payment order.
const starterConfig = `# Forecast configuration. Amounts are USD, rates are annual percentages.
dob: 1990-06-15
married: false

# Net income is pushed down this list: accounts fill up to their threshold
# (null means take everything that reaches them), "debt" entries pay extra
# toward debts at or above the given interest rate.
payment_order:
  - [checking, 5000]
  - [debt, 6.0]
  - [savings, 20000]
  - [brokerage, null]

accounts:
  - name: checking
    type: cash
    balance: 3000
  - name: savings
    type: savings
    balance: 10000
    interest_rate: 4.0
    interest_period_type: months
    interest_period_value: 1
    last_interest_date: 2026-01-01
  - name: brokerage
    type: investment
    balance: 0
    interest_rate: 7.0
    interest_period_type: years
    interest_period_value: 1
    last_interest_date: 2026-01-01
    pays_capital_gains_tax: true

bills:
  - name: rent
    charge: 1800
    charge_period_type: months
    charge_period_value: 1
    annual_inflation_percentage: 3.0
    annual_inflation_period_type: years
    annual_inflation_period_value: 1
    start_date: 2026-01-01

income:
  - name: salary
    gross: 90000
    payment_period_type: months
    payment_period_value: 1
    state_tax_percentage: 5.0
    start_date: 2026-01-01
    end_date: 2056-01-01

output:
  cadence: yearly
  end_date: 2056-01-01
`

// initCmd holds the flags for the 'init' subcommand.
type initCmd struct {
	configFile string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "write a starter forecast config file" }
func (*initCmd) Usage() string {
	return `fcs init [-c <config>]

  Writes an example config file to start from. Refuses to overwrite.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "c", "forecast.yaml", "Path of the config file to create")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := os.Stat(c.configFile); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %s already exists\n", c.configFile)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.configFile, []byte(starterConfig), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", c.configFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %s\n", c.configFile)
	return subcommands.ExitSuccess
}
