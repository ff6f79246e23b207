package trends

import (
	"context"
	"fmt"

	"github.com/trendscope/trendscope/internal/logger"
	"github.com/trendscope/trendscope/internal/models"
	"github.com/trendscope/trendscope/internal/ngram"
)

// emptyBatchSummary is the summary attached to reports over empty batches.
const emptyBatchSummary = "No articles available for analysis"

// SemanticExtractor produces richer trends from an article batch by
// delegating to an external language-model service. A non-nil error means
// the service failed or returned a malformed response; the engine treats
// both identically, logging the reason and proceeding without semantic
// trends.
type SemanticExtractor interface {
	ExtractTrends(ctx context.Context, articles []models.Article) ([]models.Trend, error)
}

// Correlator cross-references the engine's trend output against external
// market signals. See the market package for the reference implementation.
type Correlator interface {
	Report(ctx context.Context, userTrends []models.Trend, userSources []string) models.MarketReport
}

// Engine is the trend analysis engine. It is constructed explicitly and
// carries no mutable state; both collaborators are optional and the engine
// degrades to frequency-only analysis without them.
type Engine struct {
	extractor  *ngram.Extractor
	semantic   SemanticExtractor
	correlator Correlator
}

// NewEngine returns an Engine. semantic and correlator may be nil.
func NewEngine(semantic SemanticExtractor, correlator Correlator) *Engine {
	return &Engine{
		extractor:  ngram.NewExtractor(),
		semantic:   semantic,
		correlator: correlator,
	}
}

// Report generates the basic (frequency-only) trend report. An empty batch
// yields a well-formed empty report, never an error.
func (e *Engine) Report(articles []models.Article) models.TrendReport {
	if len(articles) == 0 {
		return models.TrendReport{
			Trends:  []models.Trend{},
			Summary: emptyBatchSummary,
		}
	}

	trends := e.DetectTopics(articles)
	diversity := e.SourceDiversity(articles)
	freq := e.AnalyzeFrequency(articles)

	return models.TrendReport{
		Trends: trends,
		Metrics: models.ReportMetrics{
			TotalArticles:      len(articles),
			UniqueSources:      diversity.UniqueSources,
			UniqueDomains:      diversity.UniqueDomains,
			AvgContentLength:   avgContentLength(articles),
			TopKeywords:        freq.Keywords,
			TopBigrams:         freq.Bigrams,
			SourceDistribution: diversity.SourceDistribution,
		},
		Summary: fmt.Sprintf("Analyzed %d articles from %d sources",
			len(articles), diversity.UniqueSources),
	}
}

// EnhancedReport generates the full report: frequency-derived trends and
// semantic trends merged and ranked by the scoring engine. Semantic
// extraction is best-effort; any failure degrades to a frequency-only
// report with LLMTrendsCount = 0.
func (e *Engine) EnhancedReport(ctx context.Context, articles []models.Article) models.TrendReport {
	if len(articles) == 0 {
		return models.TrendReport{
			Trends:  []models.Trend{},
			Summary: emptyBatchSummary,
		}
	}

	basicTrends := e.DetectTopics(articles)

	var llmTrends []models.Trend
	if e.semantic != nil {
		var err error
		llmTrends, err = e.semantic.ExtractTrends(ctx, articles)
		if err != nil {
			logger.Warn("semantic extraction degraded to empty: %v", err)
			llmTrends = nil
		}
	}

	scored := e.ScoreTrends(append(append([]models.Trend{}, basicTrends...), llmTrends...), articles)
	if len(scored) > maxTopics {
		scored = scored[:maxTopics]
	}

	diversity := e.SourceDiversity(articles)
	freq := e.AnalyzeFrequency(articles)

	categories := make(map[string]int)
	for _, t := range scored {
		category := t.Category
		if category == "" {
			category = "Uncategorized"
		}
		categories[category]++
	}

	return models.TrendReport{
		Trends: scored,
		Metrics: models.ReportMetrics{
			TotalArticles:      len(articles),
			UniqueSources:      diversity.UniqueSources,
			UniqueDomains:      diversity.UniqueDomains,
			AvgContentLength:   avgContentLength(articles),
			TopKeywords:        freq.Keywords,
			TopBigrams:         freq.Bigrams,
			SourceDistribution: diversity.SourceDistribution,
			TrendCategories:    categories,
			LLMTrendsCount:     len(llmTrends),
			BasicTrendsCount:   len(basicTrends),
		},
		Summary: fmt.Sprintf("Analyzed %d articles from %d sources. Found %d trends with %d AI-identified patterns.",
			len(articles), diversity.UniqueSources, len(basicTrends)+len(llmTrends), len(llmTrends)),
	}
}

// MarketIntelligenceReport runs the enhanced report and cross-references the
// resulting trends against external market signals through the correlator.
// Without a correlator the report carries the user trends alone.
func (e *Engine) MarketIntelligenceReport(ctx context.Context, articles []models.Article, userSources []string) models.MarketReport {
	if len(articles) == 0 {
		return models.MarketReport{
			UserTrends: []models.Trend{},
			Summary:    emptyBatchSummary,
		}
	}

	report := e.EnhancedReport(ctx, articles)
	if e.correlator == nil {
		return models.MarketReport{
			UserTrends: report.Trends,
			Summary: fmt.Sprintf("Analyzed %d user trends; no market correlation service configured",
				len(report.Trends)),
		}
	}
	return e.correlator.Report(ctx, report.Trends, userSources)
}

func avgContentLength(articles []models.Article) int {
	total := 0
	for _, a := range articles {
		total += len(a.Content)
	}
	return total / len(articles)
}
