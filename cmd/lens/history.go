package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"MarketLens/internal/renderer"
)

type historyCmd struct {
	limit int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list recorded summaries of a symbol" }
func (*historyCmd) Usage() string {
	return `lens history [-n <count>] <symbol>

  Lists the summaries stored by previous recorded runs, newest first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 10, "Number of runs to show.")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one symbol")
		return subcommands.ExitUsageError
	}
	symbol := strings.ToUpper(f.Arg(0))

	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	rec := a.openRecorder()
	defer rec.Close()

	records, err := rec.SymbolHistory(symbol, c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading history: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(records) == 0 {
		fmt.Printf("no history for %s\n", symbol)
		return subcommands.ExitSuccess
	}
	fmt.Printf("%s (%s)\n", a.names.Name(symbol), symbol)
	for _, r := range records {
		fmt.Printf("  max %10s on %s   mean %10s\n",
			renderer.Price(r.MaxPrice), r.MaxDate.Format(time.DateOnly), renderer.Price(r.MeanPrice))
	}
	return subcommands.ExitSuccess
}
