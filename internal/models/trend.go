package models

import "time"

// TrendType tags how a trend was derived.
type TrendType string

const (
	// TrendKeyword is a single-word trend found by frequency counting.
	TrendKeyword TrendType = "keyword"
	// TrendBigram is a two-word phrase trend found by frequency counting.
	TrendBigram TrendType = "bigram"
	// TrendLLM is a trend produced by the semantic (model-assisted) extractor.
	TrendLLM TrendType = "llm_analyzed"
)

// SupportingArticle is the evidence pointer attached to a trend: enough to
// cite the article without carrying its full content around.
type SupportingArticle struct {
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Published time.Time `json:"published,omitempty"`
}

// Trend is the unified trend record. Frequency-derived trends populate
// Frequency and RelevanceScore; semantic trends additionally carry
// Description, Category, Keywords and Evidence. The scoring engine fills the
// component scores and CompositeScore on every run.
type Trend struct {
	Name               string              `json:"name"`
	Type               TrendType           `json:"type"`
	Frequency          int                 `json:"frequency,omitempty"`
	Description        string              `json:"description,omitempty"`
	Category           string              `json:"category,omitempty"`
	Keywords           []string            `json:"keywords,omitempty"`
	Evidence           []string            `json:"evidence,omitempty"`
	RelevanceScore     float64             `json:"relevance_score"`
	CompositeScore     float64             `json:"composite_score"`
	RecencyScore       float64             `json:"recency_score"`
	FrequencyScore     float64             `json:"frequency_score"`
	AuthorityScore     float64             `json:"authority_score"`
	SupportingArticles []SupportingArticle `json:"supporting_articles,omitempty"`
	Timestamp          time.Time           `json:"timestamp"`
}

// Score resolves the canonical score of a trend: the composite score once the
// scoring engine has run, the raw relevance score before that. History
// entries, spike detection and prediction all read trends through this single
// accessor rather than re-deciding which field applies at every site.
func (t Trend) Score() float64 {
	if t.CompositeScore > 0 {
		return t.CompositeScore
	}
	return t.RelevanceScore
}
