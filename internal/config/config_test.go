package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadAndValidate(t *testing.T) {
	content := `
analysis:
  interval: 1h
  spike_window: 7
  top_trends: 15
  user_sources:
    - https://example.com/feed
    - https://news.example.org

llm:
  enabled: true
  api_key: "test_key"
  model: "gpt-4o-mini"
  timeout: 30s
  max_articles: 10

history:
  file_path: "./data/test-history.json"
  max_entries_per_trend: 200
  persist_interval: 5m

feed:
  paths:
    - "./articles.ndjson"

notify:
  enabled: true
  bot_token: "test_token"
  chat_id: "test_chat_id"

logging:
  level: "info"
  format: "json"
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Analysis.Interval != time.Hour {
		t.Errorf("Unexpected analysis interval: %v", cfg.Analysis.Interval)
	}
	if cfg.Analysis.SpikeWindow != 7 {
		t.Errorf("Unexpected spike window: %d", cfg.Analysis.SpikeWindow)
	}
	if len(cfg.Analysis.UserSources) != 2 {
		t.Errorf("Expected 2 user sources, got %d", len(cfg.Analysis.UserSources))
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("Unexpected model: %s", cfg.LLM.Model)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func validConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Interval:    time.Hour,
			SpikeWindow: 7,
			TopTrends:   15,
		},
		LLM: LLMConfig{
			Enabled:     false,
			Model:       "gpt-4o-mini",
			Timeout:     30 * time.Second,
			MaxArticles: 10,
		},
		History: HistoryConfig{
			FilePath:           "./data/history.json",
			MaxEntriesPerTrend: 200,
			PersistInterval:    5 * time.Minute,
		},
		Feed: FeedConfig{
			Paths: []string{"./articles.ndjson"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "interval too small",
			mutate:  func(c *Config) { c.Analysis.Interval = time.Second },
			wantErr: true,
		},
		{
			name:    "spike window below 1",
			mutate:  func(c *Config) { c.Analysis.SpikeWindow = 0 },
			wantErr: true,
		},
		{
			name:    "llm enabled without api key",
			mutate:  func(c *Config) { c.LLM.Enabled = true },
			wantErr: true,
		},
		{
			name: "llm enabled with api key",
			mutate: func(c *Config) {
				c.LLM.Enabled = true
				c.LLM.APIKey = "key"
			},
			wantErr: false,
		},
		{
			name:    "missing history path",
			mutate:  func(c *Config) { c.History.FilePath = "" },
			wantErr: true,
		},
		{
			name:    "no feed paths",
			mutate:  func(c *Config) { c.Feed.Paths = nil },
			wantErr: true,
		},
		{
			name:    "notify enabled without token",
			mutate:  func(c *Config) { c.Notify.Enabled = true },
			wantErr: true,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
