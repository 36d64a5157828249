package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Lookback bounds for the daily price series, in days.
const (
	MinLookbackDays = 7
	MaxLookbackDays = 365
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL     string `yaml:"base_url"`
		RateBaseURL string `yaml:"rate_base_url"`
		APIKey      string `yaml:"api_key"`
		Asset       string `yaml:"asset"`
		Reference   string `yaml:"reference_symbol"`
		Currency    string `yaml:"currency"`
		TopN        int    `yaml:"top_n"`
		Lookback    int    `yaml:"lookback_days"`
		TTLSeconds  int    `yaml:"cache_ttl_seconds"`
	} `yaml:"data_source"`
	Conversion struct {
		Base  string `yaml:"base"`
		Quote string `yaml:"quote"`
	} `yaml:"conversion"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy    string `yaml:"proxy"`
	LogLevel string `yaml:"log_level"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

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

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("LOOKBACK_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.DataSource.Lookback = days
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.DataSource.Asset == "" {
		cfg.DataSource.Asset = "bitcoin"
	}
	if cfg.DataSource.Reference == "" {
		cfg.DataSource.Reference = "btc"
	}
	if cfg.DataSource.Currency == "" {
		cfg.DataSource.Currency = "usd"
	}
	if cfg.DataSource.TopN == 0 {
		cfg.DataSource.TopN = 20
	}
	if cfg.DataSource.Lookback == 0 {
		cfg.DataSource.Lookback = 90
	}
	// Lookback is bounded, not rejected.
	if cfg.DataSource.Lookback < MinLookbackDays {
		cfg.DataSource.Lookback = MinLookbackDays
	}
	if cfg.DataSource.Lookback > MaxLookbackDays {
		cfg.DataSource.Lookback = MaxLookbackDays
	}
	if cfg.DataSource.TTLSeconds == 0 {
		cfg.DataSource.TTLSeconds = 300
	}
	if cfg.Conversion.Base == "" {
		cfg.Conversion.Base = "USD"
	}
	if cfg.Conversion.Quote == "" {
		cfg.Conversion.Quote = "BRL"
	}
	if cfg.Schedule.RefreshCron == "" {
		// Hourly at minute 0.
		cfg.Schedule.RefreshCron = "0 0 * * * *"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.DataSource.APIKey == "" {
		return fmt.Errorf("data_source.api_key is required")
	}
	return nil
}
