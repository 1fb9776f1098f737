package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"MarketLens/internal/notifier"
	"MarketLens/internal/pipeline"
	"MarketLens/internal/recorder"
	"MarketLens/internal/renderer"
)

// Notifier delivers formatted reports.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// ErrRunInProgress is returned by RunNow while another run is active.
var ErrRunInProgress = errors.New("a refresh is already running")

// Scheduler runs the analysis pipeline on a cron schedule.
type Scheduler struct {
	running sync.Mutex

	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
	Recorder recorder.Recorder
	Notifier Notifier // nil disables notifications
	Title    string
	Names    renderer.DisplayNames
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler. Overlapping runs are skipped.
func NewScheduler(ctx context.Context, p *pipeline.Pipeline, rec recorder.Recorder, n Notifier, title string, names renderer.DisplayNames) *Scheduler {
	logger := cron.PrintfLogger(&log.Logger)
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(logger))),
		Pipeline: p,
		Recorder: rec,
		Notifier: n,
		Title:    title,
		Names:    names,
		Ctx:      ctx,
	}
}

// Register schedules the daily refresh.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow runs the pipeline once, records the result and sends the report.
// Runs never overlap: a call made while another run is active returns
// ErrRunInProgress without doing anything.
func (s *Scheduler) RunNow() (renderer.Report, error) {
	if !s.running.TryLock() {
		log.Warn().Msg("refresh already running, skipping")
		return renderer.Report{}, ErrRunInProgress
	}
	defer s.running.Unlock()

	res, err := s.Pipeline.Run(s.Ctx)
	if err != nil {
		return renderer.Report{}, err
	}
	if id, err := s.Recorder.RecordRun(recorder.NewRunRecord(res)); err != nil {
		log.Error().Err(err).Msg("record run")
	} else if id > 0 {
		log.Info().Int64("run_id", id).Msg("run recorded")
	}

	report := renderer.Report{Title: s.Title, Dataset: res.Dataset, Summary: res.Summary, Names: s.Names}
	s.trySend(notifier.FormatSummaryReport(report))
	return report, nil
}

func (s *Scheduler) refreshTask() {
	log.Info().Msg("running scheduled refresh")
	if _, err := s.RunNow(); err != nil {
		if errors.Is(err, ErrRunInProgress) {
			return
		}
		log.Error().Err(err).Msg("scheduled refresh failed")
		s.trySend(fmt.Sprintf("❌ refresh failed: %v", err))
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(_ context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return help
	}
	switch fields[0] {
	case "/summary":
		// RunNow already delivers the report.
		if _, err := s.RunNow(); errors.Is(err, ErrRunInProgress) {
			return "⏳ " + err.Error()
		} else if err != nil {
			return fmt.Sprintf("❌ refresh failed: %v", err)
		}
		return ""
	case "/history":
		if len(fields) < 2 {
			return "usage: /history SYMBOL"
		}
		sym := strings.ToUpper(fields[1])
		records, err := s.Recorder.SymbolHistory(sym, 10)
		if err != nil {
			return fmt.Sprintf("❌ history: %v", err)
		}
		return notifier.FormatHistory(sym, records)
	default:
		return help
	}
}

const help = "commands:\n• /summary\n• /history SYMBOL"

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
