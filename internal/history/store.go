// Package history provides thread-safe in-memory trend history with
// file-based persistence. Entries are append-only per trend, with automatic
// rotation to keep memory and file size bounded.
//
// Persistence uses atomic JSON file writes (write to a temp file, then
// rename) so a crash mid-save never corrupts the history on disk.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/trendscope/trendscope/internal/models"
)

// Store holds per-trend history series keyed by trend name.
type Store struct {
	entries map[string][]models.HistoryEntry
	mu      sync.RWMutex

	maxEntriesPerTrend int
	filePath           string
	filePermissions    os.FileMode
	dirPermissions     os.FileMode
}

// persistenceFile is the on-disk JSON layout.
type persistenceFile struct {
	Version string                          `json:"version"`
	SavedAt time.Time                       `json:"saved_at"`
	Entries map[string][]models.HistoryEntry `json:"entries"`
}

// New creates a Store persisting to filePath. An empty filePath defaults to
// an OS-appropriate temp location.
func New(maxEntriesPerTrend int, filePath string, filePermissions, dirPermissions os.FileMode) *Store {
	if filePath == "" {
		filePath = filepath.Join(os.TempDir(), "trendscope", "history.json")
	}
	return &Store{
		entries:            make(map[string][]models.HistoryEntry),
		maxEntriesPerTrend: maxEntriesPerTrend,
		filePath:           filePath,
		filePermissions:    filePermissions,
		dirPermissions:     dirPermissions,
	}
}

// Append validates and records a new observation for entry's trend. History
// is append-only: existing entries are never modified.
func (s *Store) Append(entry models.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid history entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.Name] = append(s.entries[entry.Name], entry)
	return nil
}

// Entries returns the named trend's observations sorted by timestamp
// ascending. The returned slice is a copy; callers may mutate it freely.
func (s *Store) Entries(name string) []models.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series, exists := s.entries[name]
	if !exists {
		return []models.HistoryEntry{}
	}

	out := make([]models.HistoryEntry, len(series))
	copy(out, series)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// All returns every stored observation across all trends. The returned slice
// is a copy.
func (s *Store) All() []models.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.HistoryEntry
	for _, name := range s.sortedNames() {
		out = append(out, s.entries[name]...)
	}
	return out
}

// Names returns the tracked trend names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedNames()
}

// sortedNames must be called with the lock held.
func (s *Store) sortedNames() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rotate trims each trend's series to the most recent maxEntriesPerTrend
// observations.
func (s *Store) Rotate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, series := range s.entries {
		if len(series) > s.maxEntriesPerTrend {
			start := len(series) - s.maxEntriesPerTrend
			s.entries[name] = series[start:]
		}
	}
}

// Save persists the store to its file atomically.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, s.dirPermissions); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data := persistenceFile{
		Version: "1.0",
		SavedAt: time.Now(),
		Entries: s.entries,
	}
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	tempPath := s.filePath + ".tmp"
	if err := os.WriteFile(tempPath, jsonData, s.filePermissions); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	if err := os.Rename(tempPath, s.filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename history file: %w", err)
	}
	return nil
}

// Load restores the store from its file. A missing file is not an error;
// the store simply starts empty. Stale temp files from interrupted saves are
// cleaned up.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tempPath := s.filePath + ".tmp"
	if _, err := os.Stat(tempPath); err == nil {
		_ = os.Remove(tempPath)
	}

	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return nil
	}

	jsonData, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("failed to read history file: %w", err)
	}

	var data persistenceFile
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return fmt.Errorf("failed to unmarshal history: %w", err)
	}

	s.entries = data.Entries
	if s.entries == nil {
		s.entries = make(map[string][]models.HistoryEntry)
	}
	return nil
}
