// Package llm extracts semantic trends from article batches through a chat
// completion model. The model is asked for a JSON list of emerging trends;
// responses that cannot be parsed are surfaced as errors so callers can
// degrade to statistical analysis alone.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/trendscope/trendscope/internal/models"
)

const (
	// defaultMaxArticles bounds the prompt context to stay inside token
	// limits.
	defaultMaxArticles = 10
	// maxContentLen truncates each article body in the prompt.
	maxContentLen = 500
	// maxSupportingArticles caps the evidence attached to each trend.
	maxSupportingArticles = 3

	completionTemperature = 0.3
	completionMaxTokens   = 1500
)

// CompletionClient is the minimal completion surface the extractor needs.
// It exists so tests can substitute a canned model.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAIClient adapts the OpenAI chat completions API to CompletionClient.
type OpenAIClient struct {
	client openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(completionTemperature),
		MaxTokens:   openai.Int(completionMaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return response.Choices[0].Message.Content, nil
}

// Extractor turns article batches into semantically clustered trends.
type Extractor struct {
	client      CompletionClient
	timeout     time.Duration
	maxArticles int
}

func NewExtractor(client CompletionClient, timeout time.Duration) *Extractor {
	return &Extractor{client: client, timeout: timeout, maxArticles: defaultMaxArticles}
}

// NewExtractorMaxArticles returns an Extractor that limits the prompt to
// maxArticles articles. Values below 1 fall back to the default.
func NewExtractorMaxArticles(client CompletionClient, timeout time.Duration, maxArticles int) *Extractor {
	if maxArticles < 1 {
		maxArticles = defaultMaxArticles
	}
	return &Extractor{client: client, timeout: timeout, maxArticles: maxArticles}
}

type trendsResponse struct {
	Trends []trendItem `json:"trends"`
}

type trendItem struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	RelevanceScore float64  `json:"relevance_score"`
	Category       string   `json:"category"`
	Evidence       []string `json:"evidence"`
	Keywords       []string `json:"keywords"`
}

// ExtractTrends asks the model for 5-8 emerging trends across the batch and
// maps each onto a Trend with supporting articles matched by keyword. An
// empty batch yields no trends and no request. Model and parse failures are
// returned to the caller.
func (e *Extractor) ExtractTrends(ctx context.Context, articles []models.Article) ([]models.Trend, error) {
	if len(articles) == 0 {
		return nil, nil
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	raw, err := e.client.Complete(ctx, buildPrompt(articles, e.maxArticles))
	if err != nil {
		return nil, err
	}

	var parsed trendsResponse
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}

	trends := make([]models.Trend, 0, len(parsed.Trends))
	now := time.Now()
	for _, item := range parsed.Trends {
		if item.Name == "" {
			return nil, fmt.Errorf("model response contains a trend with no name")
		}
		trends = append(trends, models.Trend{
			Name:               item.Name,
			Type:               models.TrendLLM,
			Description:        item.Description,
			Category:           item.Category,
			Keywords:           item.Keywords,
			Evidence:           item.Evidence,
			RelevanceScore:     item.RelevanceScore,
			SupportingArticles: matchByKeywords(articles, item.Keywords),
			Timestamp:          now,
		})
	}
	return trends, nil
}

func buildPrompt(articles []models.Article, maxArticles int) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following articles and identify emerging trends, patterns, and meaningful topics.\n\n")
	sb.WriteString("ARTICLES:\n")

	limit := len(articles)
	if limit > maxArticles {
		limit = maxArticles
	}
	for _, a := range articles[:limit] {
		content := a.Content
		if len(content) > maxContentLen {
			content = content[:maxContentLen] + "..."
		}
		sb.WriteString(fmt.Sprintf("Title: %s\nContent: %s\n\n", a.Title, content))
	}

	sb.WriteString(`INSTRUCTIONS:
1. Identify 5-8 emerging trends or topics from these articles
2. For each trend, provide:
   - A clear, descriptive name (2-4 words)
   - A brief description (1-2 sentences)
   - Relevance score (0.0-1.0)
   - Category (e.g., "Technology", "AI", "Business", "Science")
   - Supporting evidence from the articles

3. Focus on:
   - New developments or breakthroughs
   - Recurring themes across multiple articles
   - Emerging technologies or concepts
   - Industry shifts or changes

4. Format your response as JSON:
{
  "trends": [
    {
      "name": "Trend Name",
      "description": "Brief description of the trend",
      "relevance_score": 0.85,
      "category": "Technology",
      "evidence": ["Article title 1", "Article title 2"],
      "keywords": ["keyword1", "keyword2", "keyword3"]
    }
  ]
}

Return only the JSON, no additional text.`)

	return sb.String()
}

// stripFences removes a markdown code fence around a JSON payload, with or
// without a language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// matchByKeywords collects up to maxSupportingArticles articles whose text
// contains any of the trend's keywords, case-insensitively.
func matchByKeywords(articles []models.Article, keywords []string) []models.SupportingArticle {
	if len(keywords) == 0 {
		return nil
	}
	var supporting []models.SupportingArticle
	for _, a := range articles {
		text := strings.ToLower(a.Text())
		for _, kw := range keywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				supporting = append(supporting, models.SupportingArticle{
					Title:     a.Title,
					Source:    a.Source,
					Published: a.Published,
				})
				break
			}
		}
		if len(supporting) == maxSupportingArticles {
			break
		}
	}
	return supporting
}
