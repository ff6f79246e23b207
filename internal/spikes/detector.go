// Package spikes provides statistical anomaly detection, persistence analysis
// and emerging-trend prediction over trend history series.
//
// Spike detection splits each trend's time-ordered score series into a
// baseline (everything before the most recent window) and a recent window,
// then flags recent points whose z-score against the baseline clears a
// severity threshold:
//
//	z = (score − baseline_mean) / baseline_stddev
//	z ≥ 4 → critical, z ≥ 3 → high, z ≥ 2 → moderate
//
// The baseline standard deviation is the Bessel-corrected sample deviation;
// series whose baseline has fewer than two points, or a zero deviation,
// are skipped entirely so no division by zero can occur.
//
// All functions are pure computations over their inputs with no internal
// concurrency or shared state.
package spikes

import (
	"fmt"
	"math"
	"sort"

	"github.com/trendscope/trendscope/internal/models"
)

// DefaultWindowSize is the recent-window length used by callers that have no
// reason to choose another.
const DefaultWindowSize = 7

// Severity thresholds on the z-score.
const (
	zCritical = 4.0
	zHigh     = 3.0
	zModerate = 2.0
)

// DetectSpikes flags statistically anomalous points in the most recent
// windowSize observations of each trend. History entries may arrive in any
// order; each trend's series is sorted by timestamp before analysis. Trends
// with fewer than windowSize entries, an undersized baseline, or a flat
// baseline are skipped. The result is ordered by severity rank then z-score,
// both descending.
//
// A windowSize below 1 is a contract violation and returns an error.
func DetectSpikes(history []models.HistoryEntry, windowSize int) ([]models.Spike, error) {
	if windowSize < 1 {
		return nil, fmt.Errorf("invalid window size %d: must be at least 1", windowSize)
	}
	if len(history) < windowSize {
		return []models.Spike{}, nil
	}

	var spikes []models.Spike
	for _, series := range groupByName(history) {
		spikes = append(spikes, detectSeriesSpikes(series, windowSize)...)
	}

	sort.SliceStable(spikes, func(i, j int) bool {
		ri, rj := spikes[i].Severity.Rank(), spikes[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		if spikes[i].ZScore != spikes[j].ZScore {
			return spikes[i].ZScore > spikes[j].ZScore
		}
		return spikes[i].TrendName < spikes[j].TrendName
	})

	if spikes == nil {
		return []models.Spike{}, nil
	}
	return spikes, nil
}

func detectSeriesSpikes(series []models.HistoryEntry, windowSize int) []models.Spike {
	if len(series) < windowSize {
		return nil
	}
	sortByTimestamp(series)

	split := len(series) - windowSize
	baseline := series[:split]
	recent := series[split:]

	// Sample standard deviation needs at least two baseline points, and a
	// flat baseline admits no meaningful z-score.
	if len(baseline) < 2 {
		return nil
	}
	baselineScores := scores(baseline)
	baselineMean := mean(baselineScores)
	baselineStd := sampleStdDev(baselineScores, baselineMean)
	if baselineStd == 0 {
		return nil
	}

	freqBaselineMean, freqBaselineOK := positiveFrequencyMean(baseline)

	var spikes []models.Spike
	for _, point := range recent {
		z := (point.Score - baselineMean) / baselineStd
		severity, significant := classifySeverity(z)
		if !significant {
			continue
		}

		spikeType := models.SpikeScore
		if freqBaselineOK && float64(point.Frequency) > freqBaselineMean {
			spikeType = models.SpikeFrequency
		}

		spikes = append(spikes, models.Spike{
			TrendName:    point.Name,
			Timestamp:    point.Timestamp,
			ZScore:       z,
			Severity:     severity,
			CurrentScore: point.Score,
			BaselineMean: baselineMean,
			Percentile:   percentileRank(point.Score, baselineScores),
			Frequency:    point.Frequency,
			SpikeType:    spikeType,
		})
	}
	return spikes
}

func classifySeverity(z float64) (models.Severity, bool) {
	switch {
	case z >= zCritical:
		return models.SeverityCritical, true
	case z >= zHigh:
		return models.SeverityHigh, true
	case z >= zModerate:
		return models.SeverityModerate, true
	default:
		return "", false
	}
}

// percentileRank is the percentage of baseline values strictly less than
// value.
func percentileRank(value float64, baseline []float64) float64 {
	if len(baseline) == 0 {
		return 0
	}
	below := 0
	for _, v := range baseline {
		if v < value {
			below++
		}
	}
	return float64(below) / float64(len(baseline)) * 100
}

// positiveFrequencyMean averages the strictly positive frequencies in the
// baseline. The second return value is false when the baseline carries no
// positive frequencies, in which case frequency-driven classification is
// impossible.
func positiveFrequencyMean(baseline []models.HistoryEntry) (float64, bool) {
	sum, n := 0.0, 0
	for _, e := range baseline {
		if e.Frequency > 0 {
			sum += float64(e.Frequency)
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// groupByName buckets history entries per trend name, preserving input order
// within each bucket. Bucket iteration order is made deterministic by name.
func groupByName(history []models.HistoryEntry) [][]models.HistoryEntry {
	buckets := make(map[string][]models.HistoryEntry)
	var names []string
	for _, e := range history {
		if _, seen := buckets[e.Name]; !seen {
			names = append(names, e.Name)
		}
		buckets[e.Name] = append(buckets[e.Name], e)
	}
	sort.Strings(names)

	grouped := make([][]models.HistoryEntry, 0, len(names))
	for _, name := range names {
		grouped = append(grouped, buckets[name])
	}
	return grouped
}

func sortByTimestamp(series []models.HistoryEntry) {
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})
}

func scores(series []models.HistoryEntry) []float64 {
	out := make([]float64, len(series))
	for i, e := range series {
		out[i] = e.Score
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev is the Bessel-corrected (divide by n−1) standard deviation.
// Returns 0 for fewer than two values.
func sampleStdDev(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		d := v - m
		variance += d * d
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}
