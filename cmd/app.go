// Package cmd implements the CLI application to work on a debt document.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/debtledger"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&historyCmd{}, "reports")
	c.Register(&csvCmd{}, "reports")

	c.Register(&fmtCmd{}, "documents")

	c.Register(&fxCmd{}, "rates")
	c.Register(&rateCmd{}, "rates")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var debtFile = flag.String("debt-file", "debt.xml", "Path to the debt document (XML)")

// loadLedger decodes and validates the app debt document.
func loadLedger() (*debtledger.Ledger, error) {
	data, err := os.ReadFile(*debtFile)
	if err != nil {
		return nil, err
	}
	l, err := debtledger.DecodeXML(data)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", *debtFile, err)
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document %q: %w", *debtFile, err)
	}
	return l, nil
}

// printMarkdown renders a markdown report on the terminal.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}

// dateFlag parses a -d value, defaulting to today.
func dateFlag(s string) (debtledger.Date, error) {
	if s == "" {
		return debtledger.Today(), nil
	}
	return debtledger.ParseDate(s)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
