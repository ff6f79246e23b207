package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/trendscope/trendscope/internal/models"
)

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain text", "plain text"},
		{"v2.0 release!", "v2\\.0 release\\!"},
		{"a-b_c", "a\\-b\\_c"},
		{"(parens) [brackets]", "\\(parens\\) \\[brackets\\]"},
	}

	for _, tt := range tests {
		result := escapeMarkdownV2(tt.input)
		if result != tt.expected {
			t.Errorf("escapeMarkdownV2(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestFormatMessage(t *testing.T) {
	spikes := []models.Spike{
		{
			TrendName:    "quantum.computing",
			Timestamp:    time.Date(2026, 8, 26, 14, 30, 0, 0, time.UTC),
			ZScore:       7.0,
			Severity:     models.SeverityCritical,
			CurrentScore: 24,
			BaselineMean: 10,
		},
		{
			TrendName:    "solar storage",
			Timestamp:    time.Date(2026, 8, 26, 14, 30, 0, 0, time.UTC),
			ZScore:       2.3,
			Severity:     models.SeverityModerate,
			CurrentScore: 0.8,
			BaselineMean: 0.5,
		},
	}

	message := formatMessage(spikes)

	if !strings.Contains(message, "quantum\\.computing") {
		t.Error("trend name not escaped in message")
	}
	if !strings.Contains(message, "*critical*") {
		t.Error("severity missing from message")
	}
	if !strings.Contains(message, "7\\.0") {
		t.Error("z-score missing from message")
	}
	if !strings.Contains(message, "2026\\-08\\-26") {
		t.Error("detection date missing from message")
	}
	if !strings.Contains(message, "1\\.") || !strings.Contains(message, "2\\.") {
		t.Error("spikes should be numbered")
	}
}
