// Package forecast simulates a person's financial life one calendar day at a
// time: income, taxes, bills, debts, investment growth and asset sales, all
// driven by a single YAML configuration.
//
// The core functionalities include:
//   - Deterministic Day Stepping: Every balance change happens in a fixed
//     daily order, so a given configuration always produces the same timeline.
//   - Double-Entry Conservation: Every dollar moved is debited from one of a
//     fixed set of counterparties (employer, biller, IRS, stock market, ...)
//     and credited to another; a drifting total is a bug and stops the run.
//   - Payment-Order Waterfall: Net income is distributed through an ordered
//     list of account thresholds and debt-overpayment rules, then surplus is
//     rebalanced between accounts the same way.
//   - Tax Modeling: Federal bracket withholding, FICA, state and city taxes
//     are withheld per paycheck, and each year is reconciled on April 15.
//   - Insolvency Detection: When accounts and forced asset sales together
//     cannot cover a charge, the run ends in bankruptcy with a final report.
//
// This package serves as the foundational logic for the `fcs` command-line
// tool.
package forecast
