package trends

import (
	"sort"
	"strings"
	"time"

	"github.com/trendscope/trendscope/internal/models"
)

// Composite score weights. The blend is fixed: recency dominates, frequency
// and source authority split the remainder evenly.
const (
	weightRecency   = 0.4
	weightFrequency = 0.3
	weightAuthority = 0.3

	// frequencyCeiling is the supporting-article count at which the
	// frequency signal saturates.
	frequencyCeiling = 5.0

	// recencyHorizon bounds how old a dated supporting article can be and
	// still count as recent. Articles without a publication date count as
	// recent, matching the behavior of feeds that omit dates.
	recencyHorizon = 7 * 24 * time.Hour

	// defaultSignal is the neutral score for trends with no supporting
	// articles, so sourceless trends are ranked rather than zeroed out.
	defaultSignal = 0.5
)

// ScoreTrends merges frequency-derived and semantic trends into one ranked
// list using the weighted composite of recency, frequency and source
// authority. The input is not mutated; the returned slice is sorted
// descending by composite score, and every component and composite score
// lies in [0, 1].
func (e *Engine) ScoreTrends(trends []models.Trend, articles []models.Article) []models.Trend {
	scored := make([]models.Trend, len(trends))
	copy(scored, trends)

	if len(scored) == 0 || len(articles) == 0 {
		return scored
	}

	authority := sourceAuthorityIndex(articles)
	now := time.Now()

	for i := range scored {
		t := &scored[i]
		t.FrequencyScore = frequencyScore(t.SupportingArticles)
		t.RecencyScore = recencyScore(t.SupportingArticles, now)
		t.AuthorityScore = authorityScore(t.SupportingArticles, authority)
		t.CompositeScore = weightRecency*t.RecencyScore +
			weightFrequency*t.FrequencyScore +
			weightAuthority*t.AuthorityScore
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].CompositeScore > scored[j].CompositeScore
	})
	return scored
}

func frequencyScore(supporting []models.SupportingArticle) float64 {
	score := float64(len(supporting)) / frequencyCeiling
	if score > 1.0 {
		return 1.0
	}
	return score
}

// recencyScore is the fraction of supporting articles counted as recent.
// An article with no publication date is counted recent; a dated article is
// recent when it falls within the horizon. Trends without supporting
// articles get the neutral default.
func recencyScore(supporting []models.SupportingArticle, now time.Time) float64 {
	if len(supporting) == 0 {
		return defaultSignal
	}
	recent := 0
	for _, sa := range supporting {
		if sa.Published.IsZero() || now.Sub(sa.Published) <= recencyHorizon {
			recent++
		}
	}
	return float64(recent) / float64(len(supporting))
}

// authorityScore is the mean per-source authority across the supporting
// articles. Sources absent from the index score the neutral default.
func authorityScore(supporting []models.SupportingArticle, authority map[string]float64) float64 {
	if len(supporting) == 0 {
		return defaultSignal
	}
	total := 0.0
	for _, sa := range supporting {
		score, ok := authority[sa.Source]
		if !ok {
			score = defaultSignal
		}
		total += score
	}
	return total / float64(len(supporting))
}

// sourceAuthorityIndex builds the per-source authority heuristic for a batch.
// Code-hosting and Q&A platforms rank highest, video platforms next,
// community discussion platforms lowest; everything else gets a solid
// middle score.
func sourceAuthorityIndex(articles []models.Article) map[string]float64 {
	index := make(map[string]float64, len(articles))
	for _, a := range articles {
		if a.Source == "" {
			continue
		}
		index[a.Source] = domainAuthority(a.Source)
	}
	return index
}

func domainAuthority(source string) float64 {
	domain := sourceDomain(source)
	if domain == "" {
		domain = source
	}
	switch {
	case strings.Contains(domain, "github.com"), strings.Contains(domain, "stackoverflow.com"):
		return 0.9
	case strings.Contains(domain, "youtube.com"):
		return 0.8
	case strings.Contains(domain, "reddit.com"):
		return 0.6
	default:
		return 0.7
	}
}
