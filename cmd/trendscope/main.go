package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/trendscope/trendscope/internal/config"
	"github.com/trendscope/trendscope/internal/feed"
	"github.com/trendscope/trendscope/internal/history"
	"github.com/trendscope/trendscope/internal/llm"
	"github.com/trendscope/trendscope/internal/logger"
	"github.com/trendscope/trendscope/internal/models"
	"github.com/trendscope/trendscope/internal/notify"
	"github.com/trendscope/trendscope/internal/spikes"
	"github.com/trendscope/trendscope/internal/trends"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	// Optional .env for local development; config file and environment win.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	store := history.New(cfg.History.MaxEntriesPerTrend, cfg.History.FilePath, 0o600, 0o750)
	if err := store.Load(); err != nil {
		logger.Warn("Failed to load persisted history: %v", err)
	}

	sources := make([]feed.Source, 0, len(cfg.Feed.Paths))
	for _, path := range cfg.Feed.Paths {
		sources = append(sources, feed.NewFileSource(path))
	}

	var semantic trends.SemanticExtractor
	if cfg.LLM.Enabled {
		client := llm.NewOpenAIClient(cfg.LLM.APIKey, cfg.LLM.Model)
		semantic = llm.NewExtractorMaxArticles(client, cfg.LLM.Timeout, cfg.LLM.MaxArticles)
		logger.Info("Semantic extraction enabled (model: %s)", cfg.LLM.Model)
	}

	var notifier *notify.Notifier
	if cfg.Notify.Enabled {
		notifier, err = notify.NewNotifier(cfg.Notify.BotToken, cfg.Notify.ChatID, 3, time.Second)
		if err != nil {
			logger.Fatal("Failed to initialize notifier: %v", err)
		}
		logger.Info("Telegram notifier initialized")
	}

	engine := trends.NewEngine(semantic, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, cleaning up...")
		cancel()
	}()

	logger.Info("Starting analysis service (interval: %v, spike window: %d, sources: %d)",
		cfg.Analysis.Interval, cfg.Analysis.SpikeWindow, len(sources))

	ticker := time.NewTicker(cfg.Analysis.Interval)
	defer ticker.Stop()

	persistTicker := time.NewTicker(cfg.History.PersistInterval)
	defer persistTicker.Stop()

	runAnalysisCycle(ctx, engine, sources, store, notifier, cfg)

	for {
		select {
		case <-ctx.Done():
			if err := store.Save(); err != nil {
				logger.Error("Failed to save history: %v", err)
			}
			logger.Info("Service stopped")
			return

		case <-ticker.C:
			runAnalysisCycle(ctx, engine, sources, store, notifier, cfg)

		case <-persistTicker.C:
			store.Rotate()
			if err := store.Save(); err != nil {
				logger.Error("Failed to persist history: %v", err)
				continue
			}
			logger.Debug("History persisted to disk")
		}
	}
}

func runAnalysisCycle(
	ctx context.Context,
	engine *trends.Engine,
	sources []feed.Source,
	store *history.Store,
	notifier *notify.Notifier,
	cfg *config.Config,
) {
	startTime := time.Now()
	logger.Info("Starting analysis cycle")

	articles, fetchErrors := feed.FetchAll(ctx, sources)
	for _, fe := range fetchErrors {
		logger.Warn("Source failed: %v", fe)
	}
	logger.Info("Fetched %d articles from %d sources", len(articles), len(sources))

	report := engine.EnhancedReport(ctx, articles)
	logger.Info("%s", report.Summary)

	now := time.Now()
	recorded := report.Trends
	if len(recorded) > cfg.Analysis.TopTrends {
		recorded = recorded[:cfg.Analysis.TopTrends]
	}
	for _, trend := range recorded {
		entry := models.HistoryEntry{
			ID:        uuid.New().String(),
			Name:      trend.Name,
			Timestamp: now,
			Score:     trend.Score(),
			Frequency: trend.Frequency,
		}
		if err := store.Append(entry); err != nil {
			logger.Warn("Failed to record trend %q: %v", trend.Name, err)
		}
	}

	detected, err := spikes.DetectSpikes(store.All(), cfg.Analysis.SpikeWindow)
	if err != nil {
		logger.Error("Spike detection failed: %v", err)
		return
	}
	logger.Info("Detected %d spikes", len(detected))

	persistence := spikes.AnalyzePersistence(store.All())
	predictions := spikes.PredictEmerging(store.All(), report.Trends)
	for _, p := range predictions {
		logger.Info("Prediction: %s (%s, confidence %.2f, lifespan %s)",
			p.TrendName, p.Type, p.Confidence, p.PredictedLifespan)
	}
	logger.Debug("Persistence records for %d trends", len(persistence))

	if len(detected) > 0 && notifier != nil {
		if err := notifier.Send(detected); err != nil {
			logger.Error("Failed to send spike notification: %v", err)
		} else {
			logger.Info("Sent notification with %d spikes", len(detected))
		}
	}

	logger.Info("Analysis cycle completed in %v", time.Since(startTime))
}
