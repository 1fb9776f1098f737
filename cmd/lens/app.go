package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"MarketLens/internal/collector"
	"MarketLens/internal/config"
	"MarketLens/internal/logger"
	"MarketLens/internal/pipeline"
	"MarketLens/internal/recorder"
	"MarketLens/internal/renderer"
)

// app bundles the collaborators every command needs.
type app struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	names    renderer.DisplayNames
}

func loadApp() (*app, error) {
	path := *configPath
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, err
	}

	fetcher, err := collector.NewFetcher(cfg.DataSource.Name, cfg.DataSource.BaseURL, cfg.Proxy, cfg.DataSource.Timeout)
	if err != nil {
		return nil, err
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")

	return &app{
		cfg: cfg,
		pipeline: &pipeline.Pipeline{
			Fetcher:    fetcher,
			Symbols:    cfg.Analysis.Symbols,
			RateSymbol: cfg.Analysis.RateSymbol,
			RateName:   cfg.Analysis.RateName,
			Period:     cfg.Analysis.Period,
			Interval:   cfg.Analysis.Interval,
		},
		names: renderer.DefaultDisplayNames.WithOverrides(cfg.DisplayNames),
	}, nil
}

// openRecorder falls back to a no-op recorder when SQLite is unavailable.
func (a *app) openRecorder() recorder.Recorder {
	if a.cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	rec, err := recorder.NewSQLiteRecorder(a.cfg.Database.SQLitePath)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return rec
}
