package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/debtledger"
	"github.com/etnz/debtledger/cnb"
	"github.com/etnz/debtledger/renderer"
	"github.com/google/subcommands"
)

type csvCmd struct {
	output string
}

func (*csvCmd) Name() string     { return "csv" }
func (*csvCmd) Synopsis() string { return "export the debt history as CSV" }
func (*csvCmd) Usage() string {
	return `csv [-o <file>]

  Replays the debt document and exports the history rows as CSV, one
  balance column group per obligation.
`
}

func (c *csvCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "write to file instead of stdout")
}

func (c *csvCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	res := debtledger.Calc(l, cnb.New())
	if res.Err != nil {
		return fail(res.Err)
	}
	out, err := renderer.CSV(res, l)
	if err != nil {
		return fail(err)
	}
	if c.output == "" {
		fmt.Print(out)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, []byte(out), 0o644); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
