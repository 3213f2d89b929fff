package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/bodysignal/internal/models"
)

var ErrInvalidGranularity = errors.New("invalid granularity")

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

const (
	LabelToday     = "Today"
	LabelYesterday = "Yesterday"
)

func ParseGranularity(raw string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(raw))) {
	case "", GranularityDay:
		return GranularityDay, nil
	case GranularityWeek:
		return GranularityWeek, nil
	case GranularityMonth:
		return GranularityMonth, nil
	default:
		return "", ErrInvalidGranularity
	}
}

type LogGroup struct {
	Label   string              `json:"label"`
	Logs    []models.SymptomLog `json:"logs"`
	Summary PeriodSummary       `json:"summary"`
}

type GroupingOptions struct {
	Granularity Granularity
	Now         time.Time
	WeekStart   time.Weekday
	Location    *time.Location
}

// GroupLogs partitions logs (most recent first) into labelled buckets. Buckets
// appear in order of their first log and keep the input order inside; two
// logs share a bucket iff their labels are equal.
func GroupLogs(logs []models.SymptomLog, options GroupingOptions) []LogGroup {
	location := options.Location
	if location == nil {
		location = time.UTC
	}

	groups := make([]LogGroup, 0)
	indexByLabel := make(map[string]int)
	for _, logEntry := range logs {
		label := GroupLabel(DateKeyOf(logEntry.Timestamp, location), options)
		index, exists := indexByLabel[label]
		if !exists {
			index = len(groups)
			indexByLabel[label] = index
			groups = append(groups, LogGroup{Label: label, Logs: []models.SymptomLog{}})
		}
		groups[index].Logs = append(groups[index].Logs, logEntry)
	}

	for index := range groups {
		groups[index].Summary = SummarizePeriod(groups[index].Label, groups[index].Logs, location)
	}
	return groups
}

// GroupLabel renders the bucket label of date. Only the day granularity
// consults options.Now beyond the year suffix.
func GroupLabel(date DateKey, options GroupingOptions) string {
	today := DateKeyOf(options.Now, options.Location)
	switch options.Granularity {
	case GranularityWeek:
		start := StartOfWeek(date, options.WeekStart)
		end := start.AddDays(6)
		label := fmt.Sprintf("%s – %s", start.Time(time.UTC).Format("Jan 2"), end.Time(time.UTC).Format("Jan 2"))
		if end.Year != today.Year {
			label += fmt.Sprintf(", %d", end.Year)
		}
		return label
	case GranularityMonth:
		return date.Time(time.UTC).Format("January 2006")
	default:
		switch date {
		case today:
			return LabelToday
		case today.AddDays(-1):
			return LabelYesterday
		}
		label := date.Time(time.UTC).Format("Monday, January 2")
		if date.Year != today.Year {
			label += fmt.Sprintf(", %d", date.Year)
		}
		return label
	}
}
