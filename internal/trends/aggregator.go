// Package trends implements the trend analysis engine: frequency-based topic
// extraction, composite scoring of frequency-derived and semantic trends, and
// report generation over finite article batches.
//
// The engine is a pure function of its inputs: it holds no mutable state
// beyond the fixed stop-word configuration of its tokenizer, so a single
// Engine value is safe for concurrent invocations on independent batches.
package trends

import (
	"net/url"
	"sort"

	"github.com/trendscope/trendscope/internal/models"
)

const (
	topKeywordCount = 20
	topBigramCount  = 15
	topDistribution = 10
)

// AnalyzeFrequency counts keyword and bigram occurrences across the whole
// batch. Each article's title and content are concatenated before
// extraction; counts are summed batch-wide, not per article, so the result
// is invariant under reordering of the input.
func (e *Engine) AnalyzeFrequency(articles []models.Article) models.FrequencyBreakdown {
	keywordCounts := make(map[string]int)
	bigramCounts := make(map[string]int)

	for _, a := range articles {
		text := a.Text()
		for _, kw := range e.extractor.Keywords(text) {
			keywordCounts[kw]++
		}
		for _, bg := range e.extractor.Ngrams(text, 2) {
			bigramCounts[bg]++
		}
	}

	return models.FrequencyBreakdown{
		Keywords: topCounts(keywordCounts, topKeywordCount),
		Bigrams:  topCounts(bigramCounts, topBigramCount),
	}
}

// SourceDiversity computes how many distinct sources and domains contributed
// to the batch. The domain is the authority component of the source URL;
// malformed URLs are skipped silently for the domain tally but never abort
// the batch.
func (e *Engine) SourceDiversity(articles []models.Article) models.SourceDiversity {
	sourceCounts := make(map[string]int)
	domainCounts := make(map[string]int)

	for _, a := range articles {
		if a.Source == "" {
			continue
		}
		sourceCounts[a.Source]++
		if domain := sourceDomain(a.Source); domain != "" {
			domainCounts[domain]++
		}
	}

	return models.SourceDiversity{
		UniqueSources:      len(sourceCounts),
		UniqueDomains:      len(domainCounts),
		SourceDistribution: topCounts(sourceCounts, topDistribution),
		DomainDistribution: topCounts(domainCounts, topDistribution),
	}
}

// sourceDomain extracts the host from a source URL, or "" when the URL is
// malformed or has no authority component.
func sourceDomain(source string) string {
	u, err := url.Parse(source)
	if err != nil {
		return ""
	}
	return u.Host
}

// topCounts converts a count map into a ranked slice capped at n entries.
// Ordering is count descending with ties broken by term ascending, so the
// ranking is deterministic regardless of map iteration order.
func topCounts(counts map[string]int, n int) []models.TermCount {
	ranked := make([]models.TermCount, 0, len(counts))
	for term, count := range counts {
		ranked = append(ranked, models.TermCount{Term: term, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Term < ranked[j].Term
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
