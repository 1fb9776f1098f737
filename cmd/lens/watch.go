package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"MarketLens/internal/notifier"
	"MarketLens/internal/scheduler"
)

type watchCmd struct {
	runOnStart bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "refresh the analysis on a cron schedule" }
func (*watchCmd) Usage() string {
	return `lens watch [-now]

  Runs the analysis on schedule.daily_cron, records every run and sends the
  summary to Telegram when a bot token and chat id are configured.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.runOnStart, "now", os.Getenv("RUN_ON_START") == "true", "Run once immediately on start.")
}

func (c *watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	rec := a.openRecorder()
	defer rec.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var tn *notifier.TelegramNotifier
	var sink scheduler.Notifier
	if a.cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy)
		sink = tn
	}

	sched := scheduler.NewScheduler(ctx, a.pipeline, rec, sink, a.cfg.Analysis.Title, a.names)
	if err := sched.Register(a.cfg.Schedule.DailyCron); err != nil {
		log.Error().Err(err).Msg("register cron task")
		return subcommands.ExitFailure
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	if c.runOnStart {
		go func() {
			if _, err := sched.RunNow(); err != nil && !errors.Is(err, scheduler.ErrRunInProgress) {
				log.Error().Err(err).Msg("initial run failed")
			}
		}()
	}

	log.Info().Str("cron", a.cfg.Schedule.DailyCron).Msg("MarketLens is running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()
	return subcommands.ExitSuccess
}
