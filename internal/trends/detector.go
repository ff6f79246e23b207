package trends

import (
	"sort"
	"strings"
	"time"

	"github.com/trendscope/trendscope/internal/models"
)

const (
	// maxTopics caps the candidate list produced by frequency analysis.
	maxTopics = 15
	// minTopicFrequency is the qualification threshold: a term seen once is
	// noise, not a topic.
	minTopicFrequency = 2
	// maxSupportingArticles caps the evidence attached to each trend.
	maxSupportingArticles = 3
)

// DetectTopics converts batch frequency counts into candidate trends with a
// simple relevance score (frequency / article count). Keywords are pooled
// before bigrams and the sort is stable, so equal-relevance keywords rank
// ahead of equal-relevance bigrams. Returns at most 15 topics, none with
// frequency below 2.
func (e *Engine) DetectTopics(articles []models.Article) []models.Trend {
	if len(articles) == 0 {
		return []models.Trend{}
	}

	freq := e.AnalyzeFrequency(articles)
	now := time.Now()

	topics := make([]models.Trend, 0, len(freq.Keywords)+len(freq.Bigrams))
	appendTopics := func(terms []models.TermCount, kind models.TrendType) {
		for _, tc := range terms {
			if tc.Count < minTopicFrequency {
				continue
			}
			topics = append(topics, models.Trend{
				Name:           tc.Term,
				Type:           kind,
				Frequency:      tc.Count,
				RelevanceScore: float64(tc.Count) / float64(len(articles)),
				Timestamp:      now,
			})
		}
	}
	appendTopics(freq.Keywords, models.TrendKeyword)
	appendTopics(freq.Bigrams, models.TrendBigram)

	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].RelevanceScore > topics[j].RelevanceScore
	})

	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	return topics
}

// TrendingTopics returns the top trends with supporting articles backfilled:
// an article supports a topic when the topic text appears as a
// case-insensitive substring of its title+content. At most 3 supporting
// articles are attached per topic.
func (e *Engine) TrendingTopics(articles []models.Article, limit int) []models.Trend {
	topics := e.DetectTopics(articles)

	for i := range topics {
		topics[i].SupportingArticles = matchArticlesBySubstring(topics[i].Name, articles)
	}

	if limit > 0 && len(topics) > limit {
		topics = topics[:limit]
	}
	return topics
}

// matchArticlesBySubstring collects up to maxSupportingArticles whose text
// contains the topic, case-insensitively.
func matchArticlesBySubstring(topic string, articles []models.Article) []models.SupportingArticle {
	needle := strings.ToLower(topic)
	var supporting []models.SupportingArticle
	for _, a := range articles {
		if strings.Contains(strings.ToLower(a.Text()), needle) {
			supporting = append(supporting, models.SupportingArticle{
				Title:     a.Title,
				Source:    a.Source,
				Published: a.Published,
			})
			if len(supporting) == maxSupportingArticles {
				break
			}
		}
	}
	return supporting
}
