package models

// TermCount pairs a term (keyword, bigram, source, or domain) with its count,
// preserving order when a ranked listing matters.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// FrequencyBreakdown holds the ranked keyword and bigram counts for a batch.
type FrequencyBreakdown struct {
	Keywords []TermCount `json:"keywords"`
	Bigrams  []TermCount `json:"bigrams"`
}

// SourceDiversity summarizes how many distinct sources and domains
// contributed to a batch, with ranked distributions for each.
type SourceDiversity struct {
	UniqueSources      int         `json:"unique_sources"`
	UniqueDomains      int         `json:"unique_domains"`
	SourceDistribution []TermCount `json:"source_distribution"`
	DomainDistribution []TermCount `json:"domain_distribution"`
}

// ReportMetrics carries the batch-level statistics attached to a trend
// report. LLMTrendsCount and BasicTrendsCount are only populated by the
// enhanced report.
type ReportMetrics struct {
	TotalArticles      int            `json:"total_articles"`
	UniqueSources      int            `json:"unique_sources"`
	UniqueDomains      int            `json:"unique_domains"`
	AvgContentLength   int            `json:"avg_content_length"`
	TopKeywords        []TermCount    `json:"top_keywords,omitempty"`
	TopBigrams         []TermCount    `json:"top_bigrams,omitempty"`
	SourceDistribution []TermCount    `json:"source_distribution,omitempty"`
	TrendCategories    map[string]int `json:"trend_categories,omitempty"`
	LLMTrendsCount     int            `json:"llm_trends_count"`
	BasicTrendsCount   int            `json:"basic_trends_count"`
}

// TrendReport is the engine's primary output: a ranked trend list with batch
// metrics and a one-line summary. An empty batch yields a well-formed report
// with no trends, never an error.
type TrendReport struct {
	Trends  []Trend       `json:"trends"`
	Metrics ReportMetrics `json:"metrics"`
	Summary string        `json:"summary"`
}

// CorrelationType classifies the strength of a user-trend / market-trend pair.
type CorrelationType string

const (
	CorrelationStrong   CorrelationType = "strong"
	CorrelationModerate CorrelationType = "moderate"
)

// Correlation pairs one of the engine's own trends with an external market
// trend by word-overlap similarity.
type Correlation struct {
	UserTrend   string          `json:"user_trend"`
	MarketTrend string          `json:"market_trend"`
	Similarity  float64         `json:"similarity"`
	Type        CorrelationType `json:"correlation_type"`
}

// ContentGap is a missing-topic suggestion from the external gap analyzer,
// consumed verbatim into recommendations.
type ContentGap struct {
	Topic            string   `json:"topic"`
	Severity         string   `json:"gap_severity"`
	SuggestedSources []string `json:"suggested_sources,omitempty"`
}

// Recommendation types.
const (
	RecommendationSourceSuggestion = "source_suggestion"
	RecommendationTrendAlignment   = "trend_alignment"
)

// Recommendation is one actionable item in a market intelligence report:
// either a source suggestion filling a content gap or a trend-alignment note
// for a strong correlation.
type Recommendation struct {
	Type             string   `json:"type"`
	Topic            string   `json:"topic,omitempty"`
	Priority         string   `json:"priority,omitempty"`
	SuggestedSources []string `json:"suggested_sources,omitempty"`
	UserTrend        string   `json:"user_trend,omitempty"`
	MarketTrend      string   `json:"market_trend,omitempty"`
	Similarity       float64  `json:"similarity,omitempty"`
}

// MarketReport cross-references the engine's trend output against external
// market signals. External-service failures degrade to empty sections; the
// report itself is always well-formed.
type MarketReport struct {
	UserTrends         []Trend          `json:"user_trends"`
	MarketTrends       []string         `json:"market_trends,omitempty"`
	Correlations       []Correlation    `json:"correlations,omitempty"`
	StrongCorrelations int              `json:"strong_correlations"`
	ContentGaps        []ContentGap     `json:"content_gaps,omitempty"`
	Recommendations    []Recommendation `json:"recommendations,omitempty"`
	Summary            string           `json:"summary"`
}
