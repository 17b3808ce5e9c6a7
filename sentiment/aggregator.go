// Package sentiment scores news headlines with a pretrained classifier and
// aggregates them into a single directional reading.
package sentiment

import (
	"context"

	"insight-alpha/models"
	"insight-alpha/observability"
)

// Classification bands on the aggregate mean.
const (
	positiveThreshold = 0.15
	negativeThreshold = -0.15
)

// Aggregator scores headline batches through a Classifier.
type Aggregator struct {
	classifier Classifier
}

// NewAggregator creates an Aggregator.
func NewAggregator(classifier Classifier) *Aggregator {
	return &Aggregator{classifier: classifier}
}

// Score classifies each title sequentially and aggregates the results.
// Individual classifier faults skip that title without failing the batch.
// With zero successfully scored titles the summary reports the distinguished
// no-data state instead of a misleading neutral zero.
func (a *Aggregator) Score(ctx context.Context, titles []string) models.SentimentSummary {
	metrics := observability.GetMetrics()

	if a.classifier == nil {
		observability.Warn("sentiment classifier not configured, reporting no data")
		summary := Aggregate(0, 0)
		summary.Skipped = len(titles)
		metrics.RecordSentiment(string(summary.Label), summary.Mean, summary.HasData)
		return summary
	}

	var sum, scored, skipped int
	for _, title := range titles {
		label, err := a.classifier.Classify(ctx, title)
		if err != nil {
			observability.Warn("headline classification failed, skipping",
				"title", title, "error", err)
			metrics.RecordHeadlineSkipped()
			skipped++
			continue
		}
		sum += ScoreForLabel(label)
		scored++
		metrics.RecordHeadlineScored()
	}

	summary := Aggregate(sum, scored)
	summary.Skipped = skipped
	metrics.RecordSentiment(string(summary.Label), summary.Mean, summary.HasData)
	return summary
}

// ScoreForLabel maps a categorical model label onto a directional score.
// Unknown labels count as neutral.
func ScoreForLabel(label string) int {
	switch label {
	case "positive":
		return 1
	case "negative":
		return -1
	default:
		return 0
	}
}

// Aggregate turns a score sum over scored headlines into a summary with the
// banded label.
func Aggregate(sum, scored int) models.SentimentSummary {
	if scored == 0 {
		return models.SentimentSummary{Label: models.SentimentNoData}
	}

	mean := float64(sum) / float64(scored)
	label := models.SentimentNeutral
	switch {
	case mean > positiveThreshold:
		label = models.SentimentPositive
	case mean < negativeThreshold:
		label = models.SentimentNegative
	}

	return models.SentimentSummary{
		Label:   label,
		Mean:    mean,
		Scored:  scored,
		HasData: true,
	}
}
