package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

var configPath = flag.String("config", "", "Path to the YAML config file (default $CONFIG_PATH or configs/config.yaml)")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&analyzeCmd{}, "analysis")
	subcommands.Register(&historyCmd{}, "analysis")
	subcommands.Register(&watchCmd{}, "service")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
