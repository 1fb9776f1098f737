package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Analysis.Symbols) != 5 || cfg.Analysis.Symbols[0] != "AAPL" {
		t.Errorf("unexpected default symbols: %v", cfg.Analysis.Symbols)
	}
	if cfg.Analysis.RateSymbol != "^TNX" || cfg.Analysis.RateName != "US10Y" {
		t.Errorf("unexpected rate defaults: %s %s", cfg.Analysis.RateSymbol, cfg.Analysis.RateName)
	}
	if cfg.Analysis.Period != "1y" || cfg.Analysis.Interval != "1d" {
		t.Errorf("unexpected range defaults: %s %s", cfg.Analysis.Period, cfg.Analysis.Interval)
	}
	if cfg.DataSource.Name != "yahoo" {
		t.Errorf("expected yahoo source, got %q", cfg.DataSource.Name)
	}
	if cfg.DataSource.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.DataSource.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if cfg.TelegramEnabled() {
		t.Error("telegram should be disabled by default")
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
analysis:
  symbols: [AAPL, MSFT]
  period: 6mo
display_names:
  MSFT: Microsoft Corp
log:
  level: debug
  format: json
`)
	t.Setenv("SYMBOLS", "NVDA, TSLA ,")
	t.Setenv("SQLITE_PATH", "/tmp/lens.db")
	t.Setenv("DATA_SOURCE", "mock")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Analysis.Symbols) != 2 || cfg.Analysis.Symbols[0] != "NVDA" || cfg.Analysis.Symbols[1] != "TSLA" {
		t.Errorf("env should override symbols, got %v", cfg.Analysis.Symbols)
	}
	if cfg.Analysis.Period != "6mo" {
		t.Errorf("expected period from file, got %s", cfg.Analysis.Period)
	}
	if cfg.DisplayNames["MSFT"] != "Microsoft Corp" {
		t.Errorf("unexpected display names: %v", cfg.DisplayNames)
	}
	if cfg.Database.SQLitePath != "/tmp/lens.db" {
		t.Errorf("unexpected sqlite path: %s", cfg.Database.SQLitePath)
	}
	if cfg.DataSource.Name != "mock" {
		t.Errorf("env should override data source, got %q", cfg.DataSource.Name)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "analysis: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"chat id without token is fine", func(c *Config) { c.Telegram.ChatID = "42" }},
		{"token without chat id", func(c *Config) { c.Telegram.BotToken = "tok" }},
		{"bad cron", func(c *Config) { c.Schedule.DailyCron = "every day" }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"empty symbol", func(c *Config) { c.Analysis.Symbols = []string{"AAPL", ""} }},
		{"unknown source", func(c *Config) { c.DataSource.Name = "bloomberg" }},
	}
	wantErr := map[string]bool{
		"chat id without token is fine": false,
		"token without chat id":         true,
		"bad cron":                      true,
		"bad log level":                 true,
		"empty symbol":                  true,
		"unknown source":                true,
	}
	for _, tt := range tests {
		cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		tt.mutate(cfg)
		err = cfg.Validate()
		if got := err != nil; got != wantErr[tt.name] {
			t.Errorf("%s: expected error=%v, got %v", tt.name, wantErr[tt.name], err)
		}
	}
}
