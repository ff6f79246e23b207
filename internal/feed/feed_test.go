package feed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/trendscope/trendscope/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestFileSource_JSONArray(t *testing.T) {
	path := writeFile(t, "articles.json", `[
		{"source": "https://a.example.com", "title": "First", "content": "Body one", "published": "2026-08-20T10:00:00Z"},
		{"source": "https://b.example.com", "title": "Second", "content": "Body two", "published": "2026-08-21"}
	]`)

	articles, err := NewFileSource(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Title != "First" || articles[0].Source != "https://a.example.com" {
		t.Errorf("unexpected first article: %+v", articles[0])
	}
	want := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	if !articles[0].Published.Equal(want) {
		t.Errorf("published = %v, want %v", articles[0].Published, want)
	}
	if articles[1].Published.IsZero() {
		t.Error("bare date should still parse")
	}
}

func TestFileSource_NDJSON(t *testing.T) {
	path := writeFile(t, "articles.ndjson", `{"source": "s1", "title": "One", "content": "c1"}

not json at all
{"source": "s2", "title": "Two", "content": "c2", "published": "garbage-date"}
`)

	articles, err := NewFileSource(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	// Blank and malformed lines are skipped, not fatal.
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[1].Title != "Two" {
		t.Errorf("second article = %+v", articles[1])
	}
	if !articles[1].Published.IsZero() {
		t.Error("unparseable published date should degrade to zero time")
	}
}

func TestFileSource_Errors(t *testing.T) {
	if _, err := NewFileSource("/does/not/exist.json").Fetch(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeFile(t, "bad.json", `{"not": "an array"}`)
	if _, err := NewFileSource(path).Fetch(context.Background()); err == nil {
		t.Error("expected error for non-array JSON file")
	}
}

func TestFileSource_CancelledContext(t *testing.T) {
	path := writeFile(t, "articles.json", `[]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewFileSource(path).Fetch(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}

type stubSource struct {
	name     string
	articles []models.Article
	err      error
}

func (s *stubSource) Fetch(context.Context) ([]models.Article, error) { return s.articles, s.err }
func (s *stubSource) Name() string                                    { return s.name }

func TestFetchAll(t *testing.T) {
	sources := []Source{
		&stubSource{name: "good", articles: []models.Article{{Title: "a"}, {Title: "b"}}},
		&stubSource{name: "broken", err: errors.New("connection refused")},
		&stubSource{name: "also good", articles: []models.Article{{Title: "c"}}},
	}

	articles, fetchErrors := FetchAll(context.Background(), sources)
	if len(articles) != 3 {
		t.Errorf("expected 3 articles, got %d", len(articles))
	}
	if len(fetchErrors) != 1 {
		t.Fatalf("expected 1 fetch error, got %d", len(fetchErrors))
	}
	if fetchErrors[0].Source != "broken" {
		t.Errorf("fetch error source = %q", fetchErrors[0].Source)
	}
	if fetchErrors[0].Error() == "" {
		t.Error("FetchError should render a message")
	}
}
