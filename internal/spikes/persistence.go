package spikes

import (
	"time"

	"github.com/trendscope/trendscope/internal/models"
)

// Direction bands: a trend is increasing when its last score clears the
// first by more than 10%, decreasing when it falls short by more than 10%,
// stable in between.
const (
	directionUpFactor   = 1.1
	directionDownFactor = 0.9
)

// AnalyzePersistence computes lifespan, direction and volatility for every
// trend with at least two historical observations. Entries may arrive in any
// order; each series is sorted by timestamp. Entries with unparseable (zero)
// first or last timestamps yield a zero-day lifespan rather than an error.
func AnalyzePersistence(history []models.HistoryEntry) map[string]models.PersistenceRecord {
	records := make(map[string]models.PersistenceRecord)

	for _, series := range groupByName(history) {
		if len(series) < 2 {
			continue
		}
		sortByTimestamp(series)

		first, last := series[0], series[len(series)-1]
		seriesScores := scores(series)

		records[first.Name] = models.PersistenceRecord{
			LifespanDays: lifespanDays(first.Timestamp, last.Timestamp),
			EntryCount:   len(series),
			Direction:    direction(seriesScores),
			Volatility:   sampleStdDev(seriesScores, mean(seriesScores)),
			CurrentScore: last.Score,
			PeakScore:    peak(seriesScores),
			FirstSeen:    first.Timestamp,
			LastSeen:     last.Timestamp,
		}
	}
	return records
}

// lifespanDays is the whole-day span between the first and last observation.
// A zero timestamp on either end means the original record carried no usable
// date, which degrades to a zero-duration lifespan.
func lifespanDays(first, last time.Time) int {
	if first.IsZero() || last.IsZero() || last.Before(first) {
		return 0
	}
	return int(last.Sub(first).Hours() / 24)
}

func direction(seriesScores []float64) models.Direction {
	first, last := seriesScores[0], seriesScores[len(seriesScores)-1]
	switch {
	case last > first*directionUpFactor:
		return models.DirectionIncreasing
	case last < first*directionDownFactor:
		return models.DirectionDecreasing
	default:
		return models.DirectionStable
	}
}

func peak(values []float64) float64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
