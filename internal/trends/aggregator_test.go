package trends

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/trendscope/trendscope/internal/models"
)

func testEngine() *Engine {
	return NewEngine(nil, nil)
}

func TestAnalyzeFrequency_OrderIndependent(t *testing.T) {
	e := testEngine()

	articles := []models.Article{
		{Source: "https://a.example.com/1", Title: "Quantum computing advances", Content: "quantum computing hits a new milestone"},
		{Source: "https://b.example.com/2", Title: "Data privacy rules", Content: "data privacy regulation tightens across markets"},
		{Source: "https://c.example.com/3", Title: "Quantum networking", Content: "quantum networking research expands quantum computing labs"},
		{Source: "https://d.example.com/4", Title: "AI regulation news", Content: "regulation debates continue around data privacy"},
	}

	base := e.AnalyzeFrequency(articles)

	shuffled := make([]models.Article, len(articles))
	copy(shuffled, articles)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5; i++ {
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := e.AnalyzeFrequency(shuffled)
		if !reflect.DeepEqual(got, base) {
			t.Fatalf("frequency counts changed under reordering:\ngot  %+v\nwant %+v", got, base)
		}
	}
}

func TestAnalyzeFrequency_TopNCaps(t *testing.T) {
	e := testEngine()

	// 30 distinct repeated keywords; only the top 20 may survive.
	var articles []models.Article
	for i := 0; i < 30; i++ {
		word := fmt.Sprintf("keyword%02d", i)
		articles = append(articles, models.Article{
			Title:   word,
			Content: word + " " + word,
		})
	}

	freq := e.AnalyzeFrequency(articles)
	if len(freq.Keywords) > 20 {
		t.Errorf("expected at most 20 keywords, got %d", len(freq.Keywords))
	}
	if len(freq.Bigrams) > 15 {
		t.Errorf("expected at most 15 bigrams, got %d", len(freq.Bigrams))
	}
}

func TestAnalyzeFrequency_CountsSummedAcrossBatch(t *testing.T) {
	e := testEngine()
	articles := []models.Article{
		{Title: "data privacy", Content: "data privacy matters"},
		{Title: "more data privacy", Content: ""},
	}

	freq := e.AnalyzeFrequency(articles)
	found := false
	for _, tc := range freq.Bigrams {
		if tc.Term == "data privacy" {
			found = true
			if tc.Count != 3 {
				t.Errorf("expected 'data privacy' count 3, got %d", tc.Count)
			}
		}
	}
	if !found {
		t.Error("expected 'data privacy' bigram in breakdown")
	}
}

func TestSourceDiversity(t *testing.T) {
	e := testEngine()

	articles := []models.Article{
		{Source: "https://news.example.com/a", Title: "one"},
		{Source: "https://news.example.com/b", Title: "two"},
		{Source: "https://blog.example.org/c", Title: "three"},
		{Source: "", Title: "sourceless"},
		{Source: "://not a url", Title: "malformed"},
	}

	d := e.SourceDiversity(articles)

	if d.UniqueSources != 4 {
		t.Errorf("expected 4 unique sources, got %d", d.UniqueSources)
	}
	// Malformed URL contributes a source but no domain.
	if d.UniqueDomains != 2 {
		t.Errorf("expected 2 unique domains, got %d", d.UniqueDomains)
	}
	if len(d.DomainDistribution) == 0 || d.DomainDistribution[0].Term != "news.example.com" {
		t.Errorf("expected news.example.com to lead domain distribution, got %+v", d.DomainDistribution)
	}
	if d.DomainDistribution[0].Count != 2 {
		t.Errorf("expected news.example.com count 2, got %d", d.DomainDistribution[0].Count)
	}
}

func TestSourceDiversity_EmptyBatch(t *testing.T) {
	e := testEngine()
	d := e.SourceDiversity(nil)
	if d.UniqueSources != 0 || d.UniqueDomains != 0 {
		t.Errorf("expected zero diversity for empty batch, got %+v", d)
	}
}
