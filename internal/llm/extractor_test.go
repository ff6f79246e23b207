package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/trendscope/trendscope/internal/models"
)

type fakeClient struct {
	response string
	err      error
	prompt   string
}

func (f *fakeClient) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

const validResponse = `{
  "trends": [
    {
      "name": "Edge AI Inference",
      "description": "Models are moving from datacenters onto devices.",
      "relevance_score": 0.85,
      "category": "AI",
      "evidence": ["Chipmaker ships on-device model"],
      "keywords": ["edge", "inference"]
    },
    {
      "name": "Grid Storage",
      "description": "Utility-scale batteries are scaling up.",
      "relevance_score": 0.7,
      "category": "Energy",
      "evidence": [],
      "keywords": ["battery", "grid"]
    }
  ]
}`

func sampleArticles() []models.Article {
	return []models.Article{
		{Source: "https://technews.example.com", Title: "Chipmaker ships on-device model", Content: "Edge inference is now viable on phones.", Published: time.Now()},
		{Source: "https://energy.example.com", Title: "Battery farm opens", Content: "A grid-scale battery installation came online.", Published: time.Now()},
		{Source: "https://other.example.com", Title: "Unrelated story", Content: "Nothing to see here.", Published: time.Now()},
	}
}

func TestExtractTrends(t *testing.T) {
	client := &fakeClient{response: validResponse}
	extractor := NewExtractor(client, 30*time.Second)

	trends, err := extractor.ExtractTrends(context.Background(), sampleArticles())
	if err != nil {
		t.Fatalf("ExtractTrends failed: %v", err)
	}
	if len(trends) != 2 {
		t.Fatalf("expected 2 trends, got %d", len(trends))
	}

	edge := trends[0]
	if edge.Name != "Edge AI Inference" {
		t.Errorf("name = %q", edge.Name)
	}
	if edge.Type != models.TrendLLM {
		t.Errorf("type = %s, want llm_analyzed", edge.Type)
	}
	if edge.RelevanceScore != 0.85 {
		t.Errorf("relevance = %v, want 0.85", edge.RelevanceScore)
	}
	if edge.Category != "AI" {
		t.Errorf("category = %q, want AI", edge.Category)
	}
	if len(edge.SupportingArticles) != 1 {
		t.Fatalf("expected 1 supporting article for edge keywords, got %d", len(edge.SupportingArticles))
	}
	if edge.SupportingArticles[0].Title != "Chipmaker ships on-device model" {
		t.Errorf("supporting article = %q", edge.SupportingArticles[0].Title)
	}
}

func TestExtractTrends_FencedResponse(t *testing.T) {
	client := &fakeClient{response: "```json\n" + validResponse + "\n```"}
	extractor := NewExtractor(client, 0)

	trends, err := extractor.ExtractTrends(context.Background(), sampleArticles())
	if err != nil {
		t.Fatalf("ExtractTrends failed on fenced response: %v", err)
	}
	if len(trends) != 2 {
		t.Errorf("expected 2 trends, got %d", len(trends))
	}
}

func TestExtractTrends_Errors(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
	}{
		{"request failure", &fakeClient{err: errors.New("rate limited")}},
		{"garbage response", &fakeClient{response: "I could not find any trends, sorry!"}},
		{"trend without name", &fakeClient{response: `{"trends": [{"relevance_score": 0.9}]}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := NewExtractor(tt.client, 0)
			if _, err := extractor.ExtractTrends(context.Background(), sampleArticles()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestExtractTrends_EmptyBatch(t *testing.T) {
	client := &fakeClient{response: validResponse}
	extractor := NewExtractor(client, 0)

	trends, err := extractor.ExtractTrends(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trends != nil {
		t.Errorf("expected nil trends, got %v", trends)
	}
	if client.prompt != "" {
		t.Error("no request should be made for an empty batch")
	}
}

func TestBuildPrompt_Limits(t *testing.T) {
	var articles []models.Article
	long := strings.Repeat("x", 2*maxContentLen)
	for i := 0; i < defaultMaxArticles+5; i++ {
		articles = append(articles, models.Article{Title: "t", Content: long})
	}

	prompt := buildPrompt(articles, defaultMaxArticles)
	if got := strings.Count(prompt, "Title: t"); got != defaultMaxArticles {
		t.Errorf("prompt contains %d articles, want %d", got, defaultMaxArticles)
	}
	if strings.Contains(prompt, long) {
		t.Error("article content was not truncated")
	}
	if !strings.Contains(prompt, `"trends"`) {
		t.Error("prompt missing JSON schema instructions")
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
