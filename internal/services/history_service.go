package services

import (
	"time"

	"github.com/terraincognita07/bodysignal/internal/models"
)

type HistoryEntry struct {
	Log               models.SymptomLog `json:"log"`
	ConditionLabel    string            `json:"condition_label"`
	KnownCondition    bool              `json:"known_condition"`
	PreviousIntensity *int              `json:"previous_intensity,omitempty"`
	Delta             DeltaResult       `json:"delta"`
}

func newHistoryEntry(logEntry models.SymptomLog, labels ConditionLabels, deltas map[string]DeltaResult) HistoryEntry {
	label, known := labels.LabelFor(logEntry.ConditionID)
	entry := HistoryEntry{
		Log:            logEntry,
		ConditionLabel: label,
		KnownCondition: known,
		Delta:          deltas[logEntry.ID],
	}
	if !entry.Delta.IsFirstOccurrence {
		previous := logEntry.Intensity - entry.Delta.Delta
		entry.PreviousIntensity = &previous
	}
	return entry
}

type HistoryGroup struct {
	Label   string         `json:"label"`
	Summary PeriodSummary  `json:"summary"`
	Entries []HistoryEntry `json:"entries"`
}

type HistoryQuery struct {
	Granularity Granularity
	ConditionID string
	Now         time.Time
	WeekStart   time.Weekday
	Location    *time.Location
}

// BuildHistory groups logs most recent first. Deltas are always taken against
// the full collection so filtering by condition never changes them.
func BuildHistory(conditions []models.Condition, logs []models.SymptomLog, query HistoryQuery) []HistoryGroup {
	labels := NewConditionLabels(conditions)
	deltas := DeltaIndex(logs)

	ordered := make([]models.SymptomLog, 0, len(logs))
	for _, logEntry := range logs {
		if query.ConditionID == "" || logEntry.ConditionID == query.ConditionID {
			ordered = append(ordered, logEntry)
		}
	}
	SortLogsDescending(ordered)

	groups := GroupLogs(ordered, GroupingOptions{
		Granularity: query.Granularity,
		Now:         query.Now,
		WeekStart:   query.WeekStart,
		Location:    query.Location,
	})

	result := make([]HistoryGroup, 0, len(groups))
	for _, group := range groups {
		entries := make([]HistoryEntry, 0, len(group.Logs))
		for _, logEntry := range group.Logs {
			entries = append(entries, newHistoryEntry(logEntry, labels, deltas))
		}
		result = append(result, HistoryGroup{
			Label:   group.Label,
			Summary: group.Summary,
			Entries: entries,
		})
	}
	return result
}

type DayDetail struct {
	Date    DateKey        `json:"date"`
	Summary DaySummary     `json:"summary"`
	Entries []HistoryEntry `json:"entries"`
}

// BuildDayDetail lists the logs dated on date in ascending order, each with
// its delta and resolved condition label.
func BuildDayDetail(conditions []models.Condition, logs []models.SymptomLog, date DateKey, location *time.Location, scale SeverityScale) DayDetail {
	labels := NewConditionLabels(conditions)
	deltas := DeltaIndex(logs)

	dayLogs := make([]models.SymptomLog, 0)
	for _, logEntry := range logs {
		if DateKeyOf(logEntry.Timestamp, location) == date {
			dayLogs = append(dayLogs, logEntry)
		}
	}
	SortLogsAscending(dayLogs)

	entries := make([]HistoryEntry, 0, len(dayLogs))
	for _, logEntry := range dayLogs {
		entries = append(entries, newHistoryEntry(logEntry, labels, deltas))
	}

	return DayDetail{
		Date:    date,
		Summary: SummarizeSeverity(dayLogs, scale),
		Entries: entries,
	}
}
