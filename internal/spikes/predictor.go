package spikes

import (
	"sort"

	"github.com/trendscope/trendscope/internal/models"
)

const (
	// maxPredictions caps the prediction list.
	maxPredictions = 5

	// newTrendScoreFloor is the minimum score at which a trend with no
	// history is considered likely-emerging.
	newTrendScoreFloor = 0.6
	// shortLifespanScore is the score above which a brand-new trend is
	// expected to burn bright and fade fast.
	shortLifespanScore = 0.8
	// newTrendConfidenceCap bounds the confidence of new-trend predictions.
	newTrendConfidenceCap = 0.9

	// acceleratingConfidence is the fixed confidence assigned to trends
	// breaking their historical peak while already on an increasing path.
	acceleratingConfidence = 0.8
	// longLifespanDays is the historical lifespan beyond which an
	// accelerating trend is predicted to run long.
	longLifespanDays = 7
)

// PredictEmerging heuristically flags likely-emerging trends: brand-new
// high-scoring topics and established topics accelerating past their
// historical peak. Returns at most 5 predictions sorted by confidence
// descending. Empty history or an empty current list yields no predictions.
func PredictEmerging(history []models.HistoryEntry, current []models.Trend) []models.Prediction {
	if len(history) == 0 || len(current) == 0 {
		return []models.Prediction{}
	}

	persistence := AnalyzePersistence(history)

	var predictions []models.Prediction
	for _, trend := range current {
		score := trend.Score()

		record, known := persistence[trend.Name]
		if !known {
			if score > newTrendScoreFloor {
				predictions = append(predictions, models.Prediction{
					TrendName:         trend.Name,
					Type:              models.PredictionNewEmerging,
					Confidence:        min(score, newTrendConfidenceCap),
					Reason:            "high initial score for a trend with no history",
					PredictedLifespan: newTrendLifespan(score),
				})
			}
			continue
		}

		if record.Direction == models.DirectionIncreasing && score > record.PeakScore {
			predictions = append(predictions, models.Prediction{
				TrendName:         trend.Name,
				Type:              models.PredictionAccelerating,
				Confidence:        acceleratingConfidence,
				Reason:            "accelerating beyond historical peak",
				PredictedLifespan: acceleratingLifespan(record.LifespanDays),
			})
		}
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		if predictions[i].Confidence != predictions[j].Confidence {
			return predictions[i].Confidence > predictions[j].Confidence
		}
		return predictions[i].TrendName < predictions[j].TrendName
	})

	if len(predictions) > maxPredictions {
		predictions = predictions[:maxPredictions]
	}
	if predictions == nil {
		return []models.Prediction{}
	}
	return predictions
}

func newTrendLifespan(score float64) models.Lifespan {
	if score > shortLifespanScore {
		return models.LifespanShort
	}
	return models.LifespanMedium
}

func acceleratingLifespan(lifespanDays int) models.Lifespan {
	if lifespanDays > longLifespanDays {
		return models.LifespanLong
	}
	return models.LifespanMedium
}
