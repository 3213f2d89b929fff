package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/terraincognita07/bodysignal/internal/models"
)

func TestSeverityScaleBucketPerView(t *testing.T) {
	thresholds := DefaultThresholds()
	tests := []struct {
		intensity int
		heatmap   Bucket
		month     Bucket
		bodyMap   Bucket
	}{
		{intensity: 0, heatmap: BucketEmpty, month: BucketEmpty, bodyMap: BucketEmpty},
		{intensity: 3, heatmap: BucketLow, month: BucketLow, bodyMap: BucketLow},
		{intensity: 4, heatmap: BucketModerate, month: BucketLow, bodyMap: BucketModerate},
		{intensity: 6, heatmap: BucketModerate, month: BucketModerate, bodyMap: BucketModerate},
		{intensity: 7, heatmap: BucketHigh, month: BucketModerate, bodyMap: BucketModerate},
		{intensity: 8, heatmap: BucketHigh, month: BucketHigh, bodyMap: BucketHigh},
		{intensity: 9, heatmap: BucketExtreme, month: BucketHigh, bodyMap: BucketHigh},
		{intensity: 10, heatmap: BucketExtreme, month: BucketHigh, bodyMap: BucketHigh},
	}

	for _, tt := range tests {
		if got := thresholds.HeatmapSeverity.Bucket(tt.intensity); got != tt.heatmap {
			t.Fatalf("heatmap Bucket(%d) = %s, want %s", tt.intensity, got, tt.heatmap)
		}
		if got := thresholds.MonthSeverity.Bucket(tt.intensity); got != tt.month {
			t.Fatalf("month Bucket(%d) = %s, want %s", tt.intensity, got, tt.month)
		}
		if got := thresholds.BodyMapSeverity.Bucket(tt.intensity); got != tt.bodyMap {
			t.Fatalf("body map Bucket(%d) = %s, want %s", tt.intensity, got, tt.bodyMap)
		}
	}
}

func TestDeltaScaleBucket(t *testing.T) {
	scale := DefaultThresholds().Delta
	tests := []struct {
		mean float64
		want Bucket
	}{
		{mean: -4, want: BucketImprovedLarge},
		{mean: -3, want: BucketImprovedLarge},
		{mean: -2.5, want: BucketImproved},
		{mean: -1, want: BucketImproved},
		{mean: -0.5, want: BucketStable},
		{mean: 0, want: BucketStable},
		{mean: 0.99, want: BucketStable},
		{mean: 1, want: BucketWorsened},
		{mean: 2.9, want: BucketWorsened},
		{mean: 3, want: BucketWorsenedLarge},
	}

	for _, tt := range tests {
		if got := scale.Bucket(tt.mean); got != tt.want {
			t.Fatalf("Bucket(%v) = %s, want %s", tt.mean, got, tt.want)
		}
	}
}

func TestSummarizeSeverityUsesMaxIntensity(t *testing.T) {
	logs := []models.SymptomLog{
		{ID: "a", Intensity: 2},
		{ID: "b", Intensity: 7},
		{ID: "c", Intensity: 5},
	}
	summary := SummarizeSeverity(logs, DefaultThresholds().HeatmapSeverity)
	if summary.Count != 3 || summary.MaxIntensity != 7 || summary.Bucket != BucketHigh {
		t.Fatalf("SummarizeSeverity() = %#v", summary)
	}

	empty := SummarizeSeverity(nil, DefaultThresholds().HeatmapSeverity)
	if empty.Bucket != BucketEmpty || empty.Count != 0 {
		t.Fatalf("SummarizeSeverity(nil) = %#v", empty)
	}
}

func TestSummarizeDeltaDistinguishesEmptyNewAndStable(t *testing.T) {
	scale := DefaultThresholds().Delta

	empty := SummarizeDelta(nil, map[string]DeltaResult{}, scale)
	if empty.Bucket != BucketNoData {
		t.Fatalf("empty day bucket = %s, want %s", empty.Bucket, BucketNoData)
	}

	logs := []models.SymptomLog{{ID: "first", Intensity: 4}}
	deltas := map[string]DeltaResult{"first": {Trend: TrendFirst, IsFirstOccurrence: true}}
	if got := SummarizeDelta(logs, deltas, scale).Bucket; got != BucketNew {
		t.Fatalf("first occurrence bucket = %s, want %s", got, BucketNew)
	}

	logs = []models.SymptomLog{{ID: "same", Intensity: 4}}
	deltas = map[string]DeltaResult{"same": {Delta: 0, Trend: TrendStable}}
	stable := SummarizeDelta(logs, deltas, scale)
	if stable.Bucket != BucketStable {
		t.Fatalf("zero change bucket = %s, want %s", stable.Bucket, BucketStable)
	}
	if stable.Bucket == empty.Bucket {
		t.Fatal("empty day must not share a bucket with a zero-change day")
	}
}

func TestSummarizeDeltaIgnoresFirstOccurrencesInMean(t *testing.T) {
	logs := []models.SymptomLog{
		{ID: "a", Intensity: 9},
		{ID: "b", Intensity: 2},
		{ID: "c", Intensity: 3},
	}
	deltas := map[string]DeltaResult{
		"a": {Delta: 4, Trend: TrendWorsened},
		"b": {Trend: TrendFirst, IsFirstOccurrence: true},
		"c": {Delta: 1, Trend: TrendWorsened},
	}
	summary := SummarizeDelta(logs, deltas, DefaultThresholds().Delta)
	if summary.MeanDelta != 2.5 || summary.Bucket != BucketWorsened {
		t.Fatalf("SummarizeDelta() = %#v, want mean 2.5 worsened", summary)
	}
	if summary.MaxIntensity != 9 || summary.Count != 3 {
		t.Fatalf("SummarizeDelta() = %#v", summary)
	}
}

func TestSummarizePeriod(t *testing.T) {
	logs := []models.SymptomLog{
		logAt("a", "c", "2026-03-10T08:00:00Z", 5, 1),
		logAt("b", "c", "2026-03-08T08:00:00Z", 2, 2),
		logAt("c", "c", "2026-03-09T08:00:00Z", 4, 3),
	}
	summary := SummarizePeriod("Mar 8 – Mar 14", logs, time.UTC)
	if summary.Count != 3 || summary.MeanIntensity != 3.7 {
		t.Fatalf("SummarizePeriod() = %#v, want count 3 mean 3.7", summary)
	}
	if summary.From != mustDate("2026-03-08") || summary.To != mustDate("2026-03-10") {
		t.Fatalf("SummarizePeriod() range = %s..%s", summary.From, summary.To)
	}

	if empty := SummarizePeriod("x", nil, time.UTC); empty.Count != 0 || empty.MeanIntensity != 0 {
		t.Fatalf("SummarizePeriod(nil) = %#v", empty)
	}
}

func TestParseAggregationMode(t *testing.T) {
	if mode, err := ParseAggregationMode(""); err != nil || mode != ModeSeverity {
		t.Fatalf("ParseAggregationMode(\"\") = %s, %v", mode, err)
	}
	if mode, err := ParseAggregationMode(" Delta "); err != nil || mode != ModeDelta {
		t.Fatalf("ParseAggregationMode(Delta) = %s, %v", mode, err)
	}
	if _, err := ParseAggregationMode("median"); err != ErrInvalidAggregationMode {
		t.Fatalf("expected ErrInvalidAggregationMode, got %v", err)
	}
}

func TestThresholdsValidate(t *testing.T) {
	if err := DefaultThresholds().Validate(); err != nil {
		t.Fatalf("default thresholds invalid: %v", err)
	}

	broken := DefaultThresholds()
	broken.MonthSeverity = SeverityScale{LowMax: 6, ModerateMax: 4}
	if err := broken.Validate(); err == nil {
		t.Fatal("expected inverted month scale to be rejected")
	}

	broken = DefaultThresholds()
	broken.Delta = DeltaScale{ChangeMin: 3, LargeChangeMin: 1}
	if err := broken.Validate(); err == nil {
		t.Fatal("expected inverted delta scale to be rejected")
	}
}

func TestSummarizeDeltaBucketsOnReportedMean(t *testing.T) {
	logs := make([]models.SymptomLog, 0, 20)
	deltas := make(map[string]DeltaResult, 20)
	for index := 0; index < 20; index++ {
		id := fmt.Sprintf("log-%d", index)
		logs = append(logs, models.SymptomLog{ID: id, Intensity: 5})
		if index == 0 {
			deltas[id] = DeltaResult{Delta: 0, Trend: TrendStable}
			continue
		}
		deltas[id] = DeltaResult{Delta: -1, Trend: TrendImproved}
	}

	// The raw mean is -0.95.
	summary := SummarizeDelta(logs, deltas, DefaultThresholds().Delta)
	if summary.MeanDelta != -1 || summary.Bucket != BucketImproved {
		t.Fatalf("SummarizeDelta() = %#v, want mean -1 improved", summary)
	}
}
