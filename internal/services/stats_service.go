package services

import (
	"time"

	"github.com/terraincognita07/bodysignal/internal/models"
)

const (
	cardRecentPoints    = 10
	detailRecentLogs    = 5
	weeklyAverageWindow = 7 * 24 * time.Hour
)

type StatsConditionReader interface {
	ListConditions() ([]models.Condition, error)
}

type StatsLogReader interface {
	ListLogs() ([]models.SymptomLog, error)
}

type StatsService struct {
	conditions StatsConditionReader
	logs       StatsLogReader
}

type ConditionCard struct {
	Condition         models.Condition   `json:"condition"`
	Status            ConditionStatus    `json:"status"`
	LogCount          int                `json:"log_count"`
	AverageIntensity  float64            `json:"average_intensity"`
	RecentIntensities []int              `json:"recent_intensities"`
	Latest            *models.SymptomLog `json:"latest,omitempty"`
	SinceLast         *DeltaResult       `json:"since_last,omitempty"`
	IsHigh            bool               `json:"is_high"`
	DetailBucket      Bucket             `json:"detail_bucket"`
}

type DashboardOverview struct {
	Filter         DashboardFilter `json:"filter"`
	ActiveCount    int             `json:"active_count"`
	TotalLogs      int             `json:"total_logs"`
	CriticalCount  int             `json:"critical_count"`
	ImprovedCount  int             `json:"improved_count"`
	WeeklyAverage  float64         `json:"weekly_average"`
	WeeklyLogCount int             `json:"weekly_log_count"`
	Cards          []ConditionCard `json:"cards"`
}

type LogWithDelta struct {
	Log   models.SymptomLog `json:"log"`
	Delta DeltaResult       `json:"delta"`
}

type ConditionDetail struct {
	Card       ConditionCard  `json:"card"`
	RecentLogs []LogWithDelta `json:"recent_logs"`
	// Chronology is every log of the condition, oldest first.
	Chronology []LogWithDelta `json:"chronology"`
}

type DashboardOptions struct {
	Filter          DashboardFilter
	IncludeArchived bool
	Now             time.Time
}

func NewStatsService(conditions StatsConditionReader, logs StatsLogReader) *StatsService {
	return &StatsService{
		conditions: conditions,
		logs:       logs,
	}
}

func (service *StatsService) BuildDashboard(options DashboardOptions, thresholds Thresholds) (DashboardOverview, error) {
	conditions, err := service.conditions.ListConditions()
	if err != nil {
		return DashboardOverview{}, err
	}
	logs, err := service.logs.ListLogs()
	if err != nil {
		return DashboardOverview{}, err
	}
	return BuildDashboardOverview(conditions, logs, options, thresholds), nil
}

// BuildDashboardOverview is the pure half of BuildDashboard.
func BuildDashboardOverview(conditions []models.Condition, logs []models.SymptomLog, options DashboardOptions, thresholds Thresholds) DashboardOverview {
	filter := options.Filter
	if filter == "" {
		filter = FilterAll
	}
	chronologies := BuildChronologies(logs)

	visible := make([]models.Condition, 0, len(conditions))
	activeCount := 0
	for _, condition := range conditions {
		if !condition.IsArchived {
			activeCount++
		}
		if condition.IsArchived && !options.IncludeArchived {
			continue
		}
		visible = append(visible, condition)
	}

	overview := DashboardOverview{
		Filter:      filter,
		ActiveCount: activeCount,
		TotalLogs:   len(logs),
		Cards:       []ConditionCard{},
	}
	for _, condition := range visible {
		status := ClassifyCondition(chronologies[condition.ID].Logs, thresholds.Dashboard.CriticalMin)
		if status.Matches(FilterCritical) {
			overview.CriticalCount++
		}
		if status.Matches(FilterImproved) {
			overview.ImprovedCount++
		}
	}

	for _, condition := range FilterConditions(visible, chronologies, filter, thresholds.Dashboard.CriticalMin) {
		overview.Cards = append(overview.Cards, BuildConditionCard(condition, chronologies[condition.ID], thresholds))
	}

	weekly := logsWithin(logs, options.Now, weeklyAverageWindow)
	overview.WeeklyAverage = AverageIntensity(weekly)
	overview.WeeklyLogCount = len(weekly)
	return overview
}

func BuildConditionCard(condition models.Condition, chronology Chronology, thresholds Thresholds) ConditionCard {
	card := ConditionCard{
		Condition:         condition,
		Status:            ClassifyCondition(chronology.Logs, thresholds.Dashboard.CriticalMin),
		LogCount:          len(chronology.Logs),
		AverageIntensity:  AverageIntensity(chronology.Logs),
		RecentIntensities: []int{},
		DetailBucket:      BucketEmpty,
	}

	recent := chronology.Logs
	if len(recent) > cardRecentPoints {
		recent = recent[len(recent)-cardRecentPoints:]
	}
	for _, logEntry := range recent {
		card.RecentIntensities = append(card.RecentIntensities, logEntry.Intensity)
	}

	latest, ok := chronology.Latest()
	if !ok {
		return card
	}
	card.Latest = &latest
	card.IsHigh = latest.Intensity >= thresholds.Dashboard.DetailHighMin
	card.DetailBucket = thresholds.MonthSeverity.Bucket(latest.Intensity)
	if delta, ok := chronology.Delta(latest.ID); ok {
		card.SinceLast = &delta
	}
	return card
}

func (service *StatsService) BuildConditionDetail(condition models.Condition, thresholds Thresholds) (ConditionDetail, error) {
	logs, err := service.logs.ListLogs()
	if err != nil {
		return ConditionDetail{}, err
	}
	chronology := BuildChronology(logs, condition.ID)

	history := make([]LogWithDelta, 0, len(chronology.Logs))
	for _, logEntry := range chronology.Logs {
		delta, _ := chronology.Delta(logEntry.ID)
		history = append(history, LogWithDelta{Log: logEntry, Delta: delta})
	}

	recent := make([]LogWithDelta, 0, detailRecentLogs)
	for index := len(history) - 1; index >= 0 && len(recent) < detailRecentLogs; index-- {
		recent = append(recent, history[index])
	}

	return ConditionDetail{
		Card:       BuildConditionCard(condition, chronology, thresholds),
		RecentLogs: recent,
		Chronology: history,
	}, nil
}

// logsWithin keeps logs stamped in the window ending at now.
func logsWithin(logs []models.SymptomLog, now time.Time, window time.Duration) []models.SymptomLog {
	from := now.Add(-window)
	result := make([]models.SymptomLog, 0)
	for _, logEntry := range logs {
		if logEntry.Timestamp.After(from) && !logEntry.Timestamp.After(now) {
			result = append(result, logEntry)
		}
	}
	return result
}
