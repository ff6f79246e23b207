// Package market correlates locally detected trends with external market
// trend data and reports coverage gaps in the user's source list.
package market

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/trendscope/trendscope/internal/logger"
	"github.com/trendscope/trendscope/internal/models"
)

const (
	// correlationFloor is the minimum Jaccard similarity worth reporting.
	correlationFloor = 0.3
	// strongCorrelation marks a correlation as strong.
	strongCorrelation = 0.7
	// maxCorrelations caps the reported correlation list.
	maxCorrelations = 10
	// maxMarketTrends caps the market trend list carried in the report.
	maxMarketTrends = 10
	// topicsPerCategory is how many market topics to fetch per category.
	topicsPerCategory = 5

	// Recommendation caps.
	maxGapRecommendations       = 3
	maxAlignmentRecommendations = 3
	maxSuggestedSources         = 2

	defaultCategory = "Technology"
)

// TrendSource provides trending topics from an external market data provider.
type TrendSource interface {
	TrendingTopics(ctx context.Context, category string, limit int) ([]string, error)
}

// GapAnalyzer finds trending topics the user's sources do not cover.
type GapAnalyzer interface {
	AnalyzeGaps(ctx context.Context, userSources, topics []string) ([]models.ContentGap, error)
}

// Correlator builds market intelligence reports from user trends and an
// external trend source. Collaborator failures degrade the report rather
// than fail it.
type Correlator struct {
	trendSource TrendSource
	gapAnalyzer GapAnalyzer
}

func NewCorrelator(trendSource TrendSource, gapAnalyzer GapAnalyzer) *Correlator {
	return &Correlator{trendSource: trendSource, gapAnalyzer: gapAnalyzer}
}

// Jaccard is the word-set Jaccard similarity of two strings: the size of the
// intersection of their lower-cased word sets over the size of the union.
// Either string being empty of words yields 0.
func Jaccard(a, b string) float64 {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	intersection := 0
	union := len(wordsB)
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		} else {
			union++
		}
	}
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}

// Correlate pairs every user trend with every market trend and keeps pairs
// whose similarity clears the relevance floor. The returned list is sorted by
// similarity descending and capped at 10; the second return value counts the
// strong correlations before capping.
func Correlate(userTrends, marketTrends []string) ([]models.Correlation, int) {
	var correlations []models.Correlation
	for _, user := range userTrends {
		for _, market := range marketTrends {
			similarity := Jaccard(user, market)
			if similarity <= correlationFloor {
				continue
			}
			corrType := models.CorrelationModerate
			if similarity > strongCorrelation {
				corrType = models.CorrelationStrong
			}
			correlations = append(correlations, models.Correlation{
				UserTrend:   user,
				MarketTrend: market,
				Similarity:  similarity,
				Type:        corrType,
			})
		}
	}

	sort.SliceStable(correlations, func(i, j int) bool {
		if correlations[i].Similarity != correlations[j].Similarity {
			return correlations[i].Similarity > correlations[j].Similarity
		}
		if correlations[i].UserTrend != correlations[j].UserTrend {
			return correlations[i].UserTrend < correlations[j].UserTrend
		}
		return correlations[i].MarketTrend < correlations[j].MarketTrend
	})

	strong := 0
	for _, c := range correlations {
		if c.Type == models.CorrelationStrong {
			strong++
		}
	}
	if len(correlations) > maxCorrelations {
		correlations = correlations[:maxCorrelations]
	}
	return correlations, strong
}

// Report correlates the user's trends against market topics fetched for each
// trend category, analyzes content coverage gaps, and derives actionable
// recommendations. Trend source or gap analyzer failures are logged and leave
// the corresponding sections empty.
func (c *Correlator) Report(ctx context.Context, userTrends []models.Trend, userSources []string) models.MarketReport {
	userNames := make([]string, 0, len(userTrends))
	for _, t := range userTrends {
		userNames = append(userNames, t.Name)
	}

	marketTrends := c.fetchMarketTrends(ctx, userTrends)
	correlations, strong := Correlate(userNames, marketTrends)
	gaps := c.analyzeGaps(ctx, userSources, marketTrends)

	report := models.MarketReport{
		UserTrends:         userTrends,
		MarketTrends:       capStrings(marketTrends, maxMarketTrends),
		Correlations:       correlations,
		StrongCorrelations: strong,
		ContentGaps:        gaps,
		Recommendations:    buildRecommendations(gaps, correlations),
		Summary: fmt.Sprintf("Analyzed %d user trends against market intelligence. Found %d correlations.",
			len(userNames), len(correlations)),
	}
	return report
}

func (c *Correlator) fetchMarketTrends(ctx context.Context, userTrends []models.Trend) []string {
	if c.trendSource == nil {
		return nil
	}

	var marketTrends []string
	for _, category := range trendCategories(userTrends) {
		topics, err := c.trendSource.TrendingTopics(ctx, category, topicsPerCategory)
		if err != nil {
			logger.Warn("failed to fetch market trends for category %s: %v", category, err)
			continue
		}
		marketTrends = append(marketTrends, topics...)
	}
	return marketTrends
}

func (c *Correlator) analyzeGaps(ctx context.Context, userSources, marketTrends []string) []models.ContentGap {
	if c.gapAnalyzer == nil || len(marketTrends) == 0 {
		return nil
	}
	gaps, err := c.gapAnalyzer.AnalyzeGaps(ctx, userSources, marketTrends)
	if err != nil {
		logger.Warn("content gap analysis failed: %v", err)
		return nil
	}
	return gaps
}

// trendCategories collects the distinct categories across the user's trends,
// substituting a default for uncategorized ones. Sorted for deterministic
// fetch order.
func trendCategories(userTrends []models.Trend) []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, t := range userTrends {
		category := t.Category
		if category == "" {
			category = defaultCategory
		}
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

func buildRecommendations(gaps []models.ContentGap, correlations []models.Correlation) []models.Recommendation {
	var recs []models.Recommendation

	for i, gap := range gaps {
		if i == maxGapRecommendations {
			break
		}
		recs = append(recs, models.Recommendation{
			Type:             models.RecommendationSourceSuggestion,
			Topic:            gap.Topic,
			Priority:         gap.Severity,
			SuggestedSources: capStrings(gap.SuggestedSources, maxSuggestedSources),
		})
	}

	for i, corr := range correlations {
		if i == maxAlignmentRecommendations {
			break
		}
		if corr.Similarity <= strongCorrelation {
			continue
		}
		recs = append(recs, models.Recommendation{
			Type:        models.RecommendationTrendAlignment,
			UserTrend:   corr.UserTrend,
			MarketTrend: corr.MarketTrend,
			Similarity:  corr.Similarity,
		})
	}
	return recs
}

func capStrings(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
