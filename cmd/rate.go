package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/debtledger"
	"github.com/etnz/debtledger/cnb"
	"github.com/google/subcommands"
)

type rateCmd struct {
	kind string
	date string
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "look up a CNB policy rate" }
func (*rateCmd) Usage() string {
	return `rate [-t DISC|LOMB|REPO] [-d <date>]

  Looks up the Czech National Bank policy rate in effect on a date
  (default today).
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "t", "REPO", "rate kind: DISC, LOMB or REPO")
	f.StringVar(&c.date, "d", "", "date (YYYY-MM-DD), default today")
}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := dateFlag(c.date)
	if err != nil {
		return fail(err)
	}
	kind := debtledger.RateKind(strings.ToUpper(c.kind))
	rate, err := cnb.New().StatutoryRate(kind, on)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("%s %.2f %% as of %s\n", kind, rate, on)
	return subcommands.ExitSuccess
}
