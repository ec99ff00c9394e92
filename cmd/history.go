package cmd

import (
	"context"
	"flag"

	"github.com/etnz/debtledger"
	"github.com/etnz/debtledger/cnb"
	"github.com/etnz/debtledger/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the day-by-day debt history" }
func (*historyCmd) Usage() string {
	return `history

  Replays the debt document and displays every obligation, payment and
  checkpoint with the resulting balances. Statutory and exchange rates are
  fetched from the Czech National Bank as needed.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	res := debtledger.Calc(l, cnb.New())
	printMarkdown(renderer.History(res, l))
	if res.Err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
