package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/debtledger"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	write bool
}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "rewrite the debt document in canonical form" }
func (*fmtCmd) Usage() string {
	return `fmt [-w]

  Decodes the debt document (including documents written by the legacy
  single-debt application) and re-encodes it in the current canonical form.
  Prints to stdout unless -w is given.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.write, "w", false, "write the result back to the document instead of stdout")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	out, err := debtledger.EncodeXML(l)
	if err != nil {
		return fail(err)
	}
	if !c.write {
		fmt.Print(string(out))
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(*debtFile, out, 0o644); err != nil {
		return fail(err)
	}
	fmt.Printf("Rewrote %s\n", *debtFile)
	return subcommands.ExitSuccess
}
