// trendscope-report runs a one-shot trend analysis over an article file and
// prints the report as JSON. Useful for inspecting a batch without running
// the full service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/trendscope/trendscope/internal/feed"
	"github.com/trendscope/trendscope/internal/llm"
	"github.com/trendscope/trendscope/internal/logger"
	"github.com/trendscope/trendscope/internal/trends"
)

var (
	inputPath  = flag.String("input", "", "Path to a JSON or NDJSON article file")
	enhanced   = flag.Bool("enhanced", false, "Include LLM semantic trends (requires OPENAI_API_KEY)")
	model      = flag.String("model", "gpt-4o-mini", "Model for semantic extraction")
	llmTimeout = flag.Duration("llm-timeout", 0, "Timeout for the semantic extraction request (0 = none)")
)

func main() {
	flag.Parse()
	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: trendscope-report -input articles.json [-enhanced]")
		os.Exit(2)
	}

	_ = godotenv.Load()
	logger.Init("warn", "text")

	ctx := context.Background()

	articles, err := feed.NewFileSource(*inputPath).Fetch(ctx)
	if err != nil {
		logger.Fatal("Failed to read articles: %v", err)
	}

	var semantic trends.SemanticExtractor
	if *enhanced {
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Fatal("OPENAI_API_KEY is required for -enhanced")
		}
		semantic = llm.NewExtractor(llm.NewOpenAIClient(apiKey, *model), *llmTimeout)
	}

	engine := trends.NewEngine(semantic, nil)

	var report any
	if *enhanced {
		report = engine.EnhancedReport(ctx, articles)
	} else {
		report = engine.Report(articles)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Fatal("Failed to marshal report: %v", err)
	}
	fmt.Println(string(out))
}
