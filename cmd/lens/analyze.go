package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"MarketLens/internal/recorder"
	"MarketLens/internal/renderer"
)

// analyzeCmd holds the flags for the 'analyze' subcommand.
type analyzeCmd struct {
	plain  bool
	record bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "download quotes once and print the summary" }
func (*analyzeCmd) Usage() string {
	return `lens analyze [-plain] [-record]

  Downloads prices and the 10Y rate, aligns them and prints max, max date
  and mean per symbol.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown instead of terminal styling.")
	f.BoolVar(&c.record, "record", false, "Store the run in the configured SQLite database.")
}

func (c *analyzeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	res, err := a.pipeline.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running analysis: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.record {
		rec := a.openRecorder()
		defer rec.Close()
		if _, err := rec.RecordRun(recorder.NewRunRecord(res)); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording run: %v\n", err)
		}
	}

	report := renderer.Report{Title: a.cfg.Analysis.Title, Dataset: res.Dataset, Summary: res.Summary, Names: a.names}
	var r renderer.Renderer = renderer.Markdown{Styled: !c.plain}
	if err := r.Render(os.Stdout, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
