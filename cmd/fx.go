package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/debtledger/cnb"
	"github.com/google/subcommands"
)

type fxCmd struct {
	currency string
	date     string
}

func (*fxCmd) Name() string     { return "fx" }
func (*fxCmd) Synopsis() string { return "look up a CNB exchange rate" }
func (*fxCmd) Usage() string {
	return `fx -c <currency> [-d <date>]

  Looks up the Czech National Bank exchange rate of a currency against CZK
  as published for a date (default today). Discontinued currencies resolve
  through their fixed successor conversion.
`
}

func (c *fxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "ISO-4217 currency code")
	f.StringVar(&c.date, "d", "", "date (YYYY-MM-DD), default today")
}

func (c *fxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.currency == "" {
		fmt.Fprintln(os.Stderr, "-c is required")
		return subcommands.ExitUsageError
	}
	on, err := dateFlag(c.date)
	if err != nil {
		return fail(err)
	}
	q, err := cnb.New().FXRate(strings.ToUpper(c.currency), on)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("%d %s = %.3f CZK (table of %s)\n", q.Quantity, q.Currency, q.Rate, q.Date)
	if q.Peg != nil {
		fmt.Printf("%g %s = 1 %s since %s\n", q.Peg.Rate, q.Peg.From, q.Peg.To, q.Peg.Since)
	}
	fmt.Printf("1 %s = %.6f CZK\n", strings.ToUpper(c.currency), q.PerUnit())
	return subcommands.ExitSuccess
}
