package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/terraincognita07/bodysignal/internal/models"
)

var ErrInvalidAggregationMode = errors.New("invalid aggregation mode")

type AggregationMode string

const (
	ModeSeverity AggregationMode = "severity"
	ModeDelta    AggregationMode = "delta"
)

func ParseAggregationMode(raw string) (AggregationMode, error) {
	switch AggregationMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeSeverity:
		return ModeSeverity, nil
	case ModeDelta:
		return ModeDelta, nil
	default:
		return "", ErrInvalidAggregationMode
	}
}

type Bucket string

const (
	BucketEmpty    Bucket = "empty"
	BucketLow      Bucket = "low"
	BucketModerate Bucket = "moderate"
	BucketHigh     Bucket = "high"
	BucketExtreme  Bucket = "extreme"

	BucketNoData        Bucket = "no-data"
	BucketNew           Bucket = "new"
	BucketStable        Bucket = "stable"
	BucketImproved      Bucket = "improved"
	BucketImprovedLarge Bucket = "improved-large"
	BucketWorsened      Bucket = "worsened"
	BucketWorsenedLarge Bucket = "worsened-large"
)

// DaySummary reduces the logs of one cell. MeanDelta only covers logs that
// have a predecessor.
type DaySummary struct {
	Count        int     `json:"count"`
	MaxIntensity int     `json:"max_intensity"`
	MeanDelta    float64 `json:"mean_delta"`
	Bucket       Bucket  `json:"bucket"`
}

// PeriodSummary reduces a week/month/day grouping bucket.
type PeriodSummary struct {
	Label         string  `json:"label"`
	Count         int     `json:"count"`
	MeanIntensity float64 `json:"mean_intensity"`
	From          DateKey `json:"from"`
	To            DateKey `json:"to"`
}

func (scale SeverityScale) Bucket(maxIntensity int) Bucket {
	switch {
	case maxIntensity <= 0:
		return BucketEmpty
	case maxIntensity <= scale.LowMax:
		return BucketLow
	case maxIntensity <= scale.ModerateMax:
		return BucketModerate
	case scale.ExtremeMin > 0 && maxIntensity >= scale.ExtremeMin:
		return BucketExtreme
	default:
		return BucketHigh
	}
}

func (scale DeltaScale) Bucket(meanDelta float64) Bucket {
	change := float64(scale.ChangeMin)
	large := float64(scale.LargeChangeMin)
	switch {
	case meanDelta <= -large:
		return BucketImprovedLarge
	case meanDelta <= -change:
		return BucketImproved
	case meanDelta >= large:
		return BucketWorsenedLarge
	case meanDelta >= change:
		return BucketWorsened
	default:
		return BucketStable
	}
}

func SummarizeSeverity(logs []models.SymptomLog, scale SeverityScale) DaySummary {
	if len(logs) == 0 {
		return DaySummary{Bucket: BucketEmpty}
	}

	maxIntensity := 0
	for _, logEntry := range logs {
		maxIntensity = max(maxIntensity, logEntry.Intensity)
	}
	return DaySummary{
		Count:        len(logs),
		MaxIntensity: maxIntensity,
		Bucket:       scale.Bucket(maxIntensity),
	}
}

// SummarizeDelta needs the per-log deltas from DeltaIndex. A log missing
// from deltas counts as a first occurrence.
func SummarizeDelta(logs []models.SymptomLog, deltas map[string]DeltaResult, scale DeltaScale) DaySummary {
	if len(logs) == 0 {
		return DaySummary{Bucket: BucketNoData}
	}

	maxIntensity := 0
	linked := 0
	deltaSum := 0
	for _, logEntry := range logs {
		maxIntensity = max(maxIntensity, logEntry.Intensity)
		result, ok := deltas[logEntry.ID]
		if !ok || result.IsFirstOccurrence {
			continue
		}
		linked++
		deltaSum += result.Delta
	}

	summary := DaySummary{Count: len(logs), MaxIntensity: maxIntensity}
	if linked == 0 {
		summary.Bucket = BucketNew
		return summary
	}

	// Bucket on the reported value so the two never disagree.
	summary.MeanDelta = roundToTenth(float64(deltaSum) / float64(linked))
	summary.Bucket = scale.Bucket(summary.MeanDelta)
	return summary
}

func SummarizePeriod(label string, logs []models.SymptomLog, location *time.Location) PeriodSummary {
	summary := PeriodSummary{Label: label, Count: len(logs)}
	if len(logs) == 0 {
		return summary
	}

	total := 0
	first := logs[0].Timestamp
	last := logs[0].Timestamp
	for _, logEntry := range logs {
		total += logEntry.Intensity
		if logEntry.Timestamp.Before(first) {
			first = logEntry.Timestamp
		}
		if logEntry.Timestamp.After(last) {
			last = logEntry.Timestamp
		}
	}

	summary.MeanIntensity = roundToTenth(float64(total) / float64(len(logs)))
	summary.From = DateKeyOf(first, location)
	summary.To = DateKeyOf(last, location)
	return summary
}

func AverageIntensity(logs []models.SymptomLog) float64 {
	if len(logs) == 0 {
		return 0
	}
	total := 0
	for _, logEntry := range logs {
		total += logEntry.Intensity
	}
	return roundToTenth(float64(total) / float64(len(logs)))
}

func roundToTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
