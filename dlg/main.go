// Command dlg replays and reports debt documents.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/debtledger/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Handles the shell completion hook; exits early when invoked by it.
	completion().Complete("dlg")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"debt-file": predict.Files("*.xml"),
			"cnb-url":   predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"history": {},
			"csv":     {Flags: map[string]complete.Predictor{"o": predict.Files("*.csv")}},
			"fmt":     {Flags: map[string]complete.Predictor{"w": predict.Nothing}},
			"fx":      {Flags: map[string]complete.Predictor{"c": predict.Something, "d": predict.Something}},
			"rate":    {Flags: map[string]complete.Predictor{"t": predict.Set{"DISC", "LOMB", "REPO"}, "d": predict.Something}},
		},
	}
}
