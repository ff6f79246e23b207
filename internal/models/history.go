package models

import (
	"errors"
	"time"
)

// HistoryEntry is one batch's observation of a trend: an immutable,
// append-only record. Score is resolved at append time via Trend.Score, so
// downstream analysis never has to choose between composite and relevance
// scores again.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Score     float64   `json:"score"`
	Frequency int       `json:"frequency"`
}

// Validate checks that all history entry fields are valid.
func (e *HistoryEntry) Validate() error {
	if e.ID == "" {
		return errors.New("entry ID must not be empty")
	}
	if e.Name == "" {
		return errors.New("trend name must not be empty")
	}
	if e.Score < 0 {
		return errors.New("score must not be negative")
	}
	if e.Frequency < 0 {
		return errors.New("frequency must not be negative")
	}
	if e.Timestamp.After(time.Now()) {
		return errors.New("timestamp must not be in the future")
	}
	return nil
}

// Severity classifies how anomalous a spike is.
type Severity string

const (
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities for sorting: critical > high > moderate > unknown.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityModerate:
		return 1
	default:
		return 0
	}
}

// SpikeType distinguishes spikes driven by raw mention counts from spikes
// driven by score movement alone.
type SpikeType string

const (
	SpikeFrequency SpikeType = "frequency"
	SpikeScore     SpikeType = "score"
)

// Spike is a derived, ephemeral anomaly record. It is produced fresh on each
// detection call and never persisted by the engine.
type Spike struct {
	TrendName    string    `json:"trend_name"`
	Timestamp    time.Time `json:"timestamp"`
	ZScore       float64   `json:"z_score"`
	Severity     Severity  `json:"severity"`
	CurrentScore float64   `json:"current_score"`
	BaselineMean float64   `json:"baseline_mean"`
	Percentile   float64   `json:"percentile"`
	Frequency    int       `json:"frequency"`
	SpikeType    SpikeType `json:"spike_type"`
}

// Direction describes the movement of a trend's score over its lifespan.
type Direction string

const (
	DirectionIncreasing Direction = "increasing"
	DirectionDecreasing Direction = "decreasing"
	DirectionStable     Direction = "stable"
)

// PersistenceRecord summarizes the longevity and stability of one trend
// across its historical observations.
type PersistenceRecord struct {
	LifespanDays int       `json:"lifespan_days"`
	EntryCount   int       `json:"entry_count"`
	Direction    Direction `json:"trend_direction"`
	Volatility   float64   `json:"volatility"`
	CurrentScore float64   `json:"current_score"`
	PeakScore    float64   `json:"peak_score"`
	FirstSeen    time.Time `json:"first_seen"`
	LastSeen     time.Time `json:"last_seen"`
}

// PredictionType tags why a trend was flagged as likely-emerging.
type PredictionType string

const (
	PredictionNewEmerging  PredictionType = "new_emerging"
	PredictionAccelerating PredictionType = "accelerating"
)

// Lifespan is the predicted longevity band of an emerging trend.
type Lifespan string

const (
	LifespanShort  Lifespan = "short"
	LifespanMedium Lifespan = "medium"
	LifespanLong   Lifespan = "long"
)

// Prediction flags a trend as likely-emerging, with a heuristic confidence
// and a human-readable reason.
type Prediction struct {
	TrendName         string         `json:"trend_name"`
	Type              PredictionType `json:"prediction_type"`
	Confidence        float64        `json:"confidence"`
	Reason            string         `json:"reason"`
	PredictedLifespan Lifespan       `json:"predicted_lifespan"`
}
