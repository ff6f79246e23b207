// Package models defines the core domain entities for the trendscope engine.
// These models represent harvested articles, detected trends, longitudinal
// trend history, and the derived analysis records (spikes, persistence,
// predictions, correlations). Records that cross the history-store boundary
// include built-in validation to ensure data integrity.
//
// Terminology:
//   - Article: one short text document harvested from a feed. Immutable once
//     fetched; owned by the batch it arrived in.
//   - Trend: a candidate subject of interest derived from a batch, either by
//     frequency counting or by model-assisted extraction. Recomputed on every
//     analysis run; never persisted as a mutable object.
//   - HistoryEntry: one batch's immutable observation of a trend, the unit
//     the spike detector and persistence analyzer operate on.
package models

import "time"

// Article is a single harvested document. Source is the URL of the feed or
// page it came from. Published is the zero time when the feed did not carry
// a publication date.
type Article struct {
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published time.Time `json:"published,omitempty"`
}

// Text returns the title and content joined for token extraction and
// substring matching. The title is appended after the content so bigrams
// never span the content/title boundary in a surprising order.
func (a Article) Text() string {
	return a.Content + " " + a.Title
}
