package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	LLM      LLMConfig      `mapstructure:"llm"`
	History  HistoryConfig  `mapstructure:"history"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AnalysisConfig holds the trend analysis knobs.
type AnalysisConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	SpikeWindow int           `mapstructure:"spike_window"`
	TopTrends   int           `mapstructure:"top_trends"`
	UserSources []string      `mapstructure:"user_sources"`
}

// LLMConfig holds the semantic extractor configuration. The extractor is
// optional: when disabled the pipeline runs on frequency signals alone.
type LLMConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxArticles int           `mapstructure:"max_articles"`
}

// HistoryConfig holds the trend-history store configuration.
type HistoryConfig struct {
	FilePath           string        `mapstructure:"file_path"`
	MaxEntriesPerTrend int           `mapstructure:"max_entries_per_trend"`
	PersistInterval    time.Duration `mapstructure:"persist_interval"`
}

// FeedConfig holds the article source configuration.
type FeedConfig struct {
	Paths []string `mapstructure:"paths"`
}

// NotifyConfig holds the spike alert notifier configuration.
type NotifyConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the given file and TRENDSCOPE_* environment
// variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	v.SetEnvPrefix("TRENDSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// setDefaults configures default values for all configuration options.
func setDefaults(v *viper.Viper) {
	v.SetDefault("analysis.interval", "1h")
	v.SetDefault("analysis.spike_window", 7)
	v.SetDefault("analysis.top_trends", 15)

	v.SetDefault("llm.enabled", false)
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.timeout", "30s")
	v.SetDefault("llm.max_articles", 10)

	v.SetDefault("history.file_path", "./data/trend-history.json")
	v.SetDefault("history.max_entries_per_trend", 200)
	v.SetDefault("history.persist_interval", "5m")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid.
func (c *Config) Validate() error {
	if c.Analysis.Interval < time.Minute {
		return fmt.Errorf("analysis.interval must be at least 1 minute")
	}
	if c.Analysis.SpikeWindow < 1 {
		return fmt.Errorf("analysis.spike_window must be at least 1")
	}
	if c.Analysis.TopTrends < 1 {
		return fmt.Errorf("analysis.top_trends must be at least 1")
	}

	if c.LLM.Enabled {
		if c.LLM.APIKey == "" {
			return fmt.Errorf("llm.api_key is required when llm is enabled")
		}
		if c.LLM.Model == "" {
			return fmt.Errorf("llm.model is required when llm is enabled")
		}
		if c.LLM.Timeout < time.Second {
			return fmt.Errorf("llm.timeout must be at least 1 second")
		}
		if c.LLM.MaxArticles < 1 {
			return fmt.Errorf("llm.max_articles must be at least 1")
		}
	}

	if c.History.FilePath == "" {
		return fmt.Errorf("history.file_path is required")
	}
	if c.History.MaxEntriesPerTrend < 10 {
		return fmt.Errorf("history.max_entries_per_trend must be at least 10")
	}
	if c.History.PersistInterval < time.Minute {
		return fmt.Errorf("history.persist_interval must be at least 1 minute")
	}

	if len(c.Feed.Paths) == 0 {
		return fmt.Errorf("feed.paths must contain at least one article source")
	}

	if c.Notify.Enabled {
		if c.Notify.BotToken == "" {
			return fmt.Errorf("notify.bot_token is required when notify is enabled")
		}
		if c.Notify.ChatID == "" {
			return fmt.Errorf("notify.chat_id is required when notify is enabled")
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
