package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/bodysignal/internal/models"
)

func TestBuildHistoryResolvesLabelsAndDeltas(t *testing.T) {
	conditions := []models.Condition{{ID: "c", Label: "Migraine"}}
	logs := []models.SymptomLog{
		logAt("c1", "c", "2026-03-08T09:00:00Z", 3, 1),
		logAt("x1", "gone", "2026-03-09T09:00:00Z", 5, 2),
		logAt("c2", "c", "2026-03-10T09:00:00Z", 6, 3),
	}

	groups := BuildHistory(conditions, logs, HistoryQuery{
		Granularity: GranularityDay,
		Now:         fixedNow(),
		Location:    time.UTC,
	})
	if got := []string{groups[0].Label, groups[1].Label, groups[2].Label}; !sameStrings(got, []string{"Today", "Yesterday", "Sunday, March 8"}) {
		t.Fatalf("labels = %q", got)
	}

	today := groups[0].Entries[0]
	if today.ConditionLabel != "Migraine" || !today.KnownCondition || today.Delta.Delta != 3 {
		t.Fatalf("today entry = %#v", today)
	}
	if today.PreviousIntensity == nil || *today.PreviousIntensity != 3 {
		t.Fatalf("today previous intensity = %v", today.PreviousIntensity)
	}
	orphan := groups[1].Entries[0]
	if orphan.ConditionLabel != UnknownConditionLabel || orphan.KnownCondition || !orphan.Delta.IsFirstOccurrence || orphan.PreviousIntensity != nil {
		t.Fatalf("orphan entry = %#v", orphan)
	}
}

func TestBuildHistoryConditionFilterKeepsDeltas(t *testing.T) {
	logs := []models.SymptomLog{
		logAt("a1", "a", "2026-03-01T09:00:00Z", 2, 1),
		logAt("b1", "b", "2026-03-02T09:00:00Z", 9, 2),
		logAt("a2", "a", "2026-03-03T09:00:00Z", 5, 3),
	}

	groups := BuildHistory(nil, logs, HistoryQuery{
		Granularity: GranularityMonth,
		ConditionID: "a",
		Now:         fixedNow(),
	})
	if len(groups) != 1 || len(groups[0].Entries) != 2 {
		t.Fatalf("groups = %#v", groups)
	}
	if groups[0].Entries[0].Log.ID != "a2" || groups[0].Entries[0].Delta.Delta != 3 {
		t.Fatalf("first entry = %#v", groups[0].Entries[0])
	}
}

func TestBuildDayDetail(t *testing.T) {
	conditions := []models.Condition{{ID: "c", Label: "Migraine"}}
	logs := []models.SymptomLog{
		logAt("c1", "c", "2026-03-08T09:00:00Z", 3, 1),
		logAt("c2", "c", "2026-03-10T18:00:00Z", 9, 2),
		logAt("c3", "c", "2026-03-10T07:00:00Z", 6, 3),
	}

	detail := BuildDayDetail(conditions, logs, mustDate("2026-03-10"), time.UTC, DefaultThresholds().MonthSeverity)
	if got := []string{detail.Entries[0].Log.ID, detail.Entries[1].Log.ID}; !sameStrings(got, []string{"c3", "c2"}) {
		t.Fatalf("day entries = %v", got)
	}
	if detail.Summary.MaxIntensity != 9 || detail.Summary.Bucket != BucketHigh {
		t.Fatalf("summary = %#v", detail.Summary)
	}
	if detail.Entries[0].Delta.Delta != 3 || detail.Entries[1].Delta.Delta != 3 {
		t.Fatalf("deltas = %#v %#v", detail.Entries[0].Delta, detail.Entries[1].Delta)
	}

	empty := BuildDayDetail(conditions, logs, mustDate("2026-03-09"), time.UTC, DefaultThresholds().MonthSeverity)
	if len(empty.Entries) != 0 || empty.Summary.Bucket != BucketEmpty {
		t.Fatalf("empty day = %#v", empty)
	}
}
