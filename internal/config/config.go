package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Name    string        `yaml:"name" default:"yahoo" validate:"oneof=yahoo mock"`
		BaseURL string        `yaml:"base_url" default:"https://query1.finance.yahoo.com" validate:"required,url"`
		Timeout time.Duration `yaml:"timeout" default:"30s" validate:"gt=0"`
	} `yaml:"data_source"`
	Analysis struct {
		Symbols    []string `yaml:"symbols" default:"[\"AAPL\",\"AMZN\",\"MSFT\",\"NVDA\",\"TSLA\"]" validate:"required,min=1,dive,required"`
		RateSymbol string   `yaml:"rate_symbol" default:"^TNX" validate:"required"`
		RateName   string   `yaml:"rate_name" default:"US10Y" validate:"required"`
		Period     string   `yaml:"period" default:"1y" validate:"required"`
		Interval   string   `yaml:"interval" default:"1d" validate:"required"`
		Title      string   `yaml:"title" default:"Tech stocks and 10Y interest rate"`
	} `yaml:"analysis"`
	DisplayNames map[string]string `yaml:"display_names"`
	Telegram     struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id" validate:"required_with=BotToken"`
	} `yaml:"telegram"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron" default:"0 0 22 * * 1-5" validate:"required"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" default:"data/market_lens.db"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=json console"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

var validate = validator.New()

var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SYMBOLS"); v != "" {
		var symbols []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				symbols = append(symbols, s)
			}
		}
		cfg.Analysis.Symbols = symbols
	}
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		cfg.DataSource.Name = v
	}
	if v := os.Getenv("PERIOD"); v != "" {
		cfg.Analysis.Period = v
	}
	if v := os.Getenv("INTERVAL"); v != "" {
		cfg.Analysis.Interval = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate checks field constraints and the schedule expression.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if _, err := cronParser.Parse(c.Schedule.DailyCron); err != nil {
		return fmt.Errorf("schedule.daily_cron: %w", err)
	}
	return nil
}

// TelegramEnabled reports whether reports should be sent to Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
