// Package feed loads article batches from local files. Sources implement a
// small interface so the analysis loop can mix file-backed feeds with other
// providers.
package feed

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/trendscope/trendscope/internal/logger"
	"github.com/trendscope/trendscope/internal/models"
)

// Source supplies a batch of articles for analysis.
type Source interface {
	Fetch(ctx context.Context) ([]models.Article, error)
	Name() string
}

// FetchError represents a per-source fetch failure.
type FetchError struct {
	Source string
	Err    error
}

func (e FetchError) Error() string {
	return fmt.Sprintf("fetch error for source %s: %v", e.Source, e.Err)
}

// FetchAll gathers articles from every source. Individual source failures
// are non-fatal and collected separately so one broken feed never starves
// the analysis of the rest.
func FetchAll(ctx context.Context, sources []Source) ([]models.Article, []FetchError) {
	var articles []models.Article
	var fetchErrors []FetchError

	for _, source := range sources {
		batch, err := source.Fetch(ctx)
		if err != nil {
			fetchErrors = append(fetchErrors, FetchError{Source: source.Name(), Err: err})
			continue
		}
		articles = append(articles, batch...)
	}
	return articles, fetchErrors
}

// fileArticle is the on-disk article layout, with a flexible published field.
type fileArticle struct {
	Source    string `json:"source"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published string `json:"published"`
}

func (fa fileArticle) toArticle() models.Article {
	return models.Article{
		Source:    fa.Source,
		Title:     fa.Title,
		Content:   fa.Content,
		Published: parsePublished(fa.Published),
	}
}

// parsePublished accepts RFC 3339 or a bare date; anything else degrades to
// the zero time, which downstream scoring treats as recent.
func parsePublished(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FileSource reads articles from a JSON array file or an NDJSON/JSONL file,
// chosen by extension.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Name() string {
	return f.path
}

func (f *FileSource) Fetch(ctx context.Context) ([]models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(f.path)) {
	case ".ndjson", ".jsonl":
		return f.readNDJSON()
	default:
		return f.readJSONArray()
	}
}

func (f *FileSource) readJSONArray() ([]models.Article, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}

	var raw []fileArticle
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse article file %s: %w", f.path, err)
	}

	articles := make([]models.Article, 0, len(raw))
	for _, fa := range raw {
		articles = append(articles, fa.toArticle())
	}
	return articles, nil
}

// readNDJSON decodes one article per line. Malformed lines are skipped with
// a debug log rather than failing the whole file.
func (f *FileSource) readNDJSON() ([]models.Article, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var articles []models.Article
	sc := bufio.NewScanner(file)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var fa fileArticle
		if err := json.Unmarshal([]byte(line), &fa); err != nil {
			logger.Debug("skipping malformed line %d in %s: %v", lineNo, f.path, err)
			continue
		}
		articles = append(articles, fa.toArticle())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return articles, nil
}
