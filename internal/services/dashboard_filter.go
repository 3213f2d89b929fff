package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/bodysignal/internal/models"
)

var ErrInvalidDashboardFilter = errors.New("invalid dashboard filter")

type DashboardFilter string

const (
	FilterAll      DashboardFilter = "all"
	FilterCritical DashboardFilter = "critical"
	FilterImproved DashboardFilter = "improved"
)

func ParseDashboardFilter(raw string) (DashboardFilter, error) {
	switch DashboardFilter(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterCritical:
		return FilterCritical, nil
	case FilterImproved:
		return FilterImproved, nil
	default:
		return "", ErrInvalidDashboardFilter
	}
}

type ConditionStatus struct {
	HasLogs  bool `json:"has_logs"`
	Critical bool `json:"critical"`
	Improved bool `json:"improved"`
}

// ClassifyCondition reads the two most recent of the ascending logs.
func ClassifyCondition(ascending []models.SymptomLog, criticalMin int) ConditionStatus {
	if len(ascending) == 0 {
		return ConditionStatus{}
	}

	latest := ascending[len(ascending)-1]
	status := ConditionStatus{
		HasLogs:  true,
		Critical: latest.Intensity >= criticalMin,
	}
	if len(ascending) >= 2 {
		status.Improved = latest.Intensity < ascending[len(ascending)-2].Intensity
	}
	return status
}

func (status ConditionStatus) Matches(filter DashboardFilter) bool {
	switch filter {
	case FilterCritical:
		return status.HasLogs && status.Critical
	case FilterImproved:
		return status.HasLogs && status.Improved
	default:
		return true
	}
}

// FilterConditions keeps the conditions matching filter, in input order.
func FilterConditions(conditions []models.Condition, chronologies map[string]Chronology, filter DashboardFilter, criticalMin int) []models.Condition {
	result := make([]models.Condition, 0, len(conditions))
	for _, condition := range conditions {
		status := ClassifyCondition(chronologies[condition.ID].Logs, criticalMin)
		if status.Matches(filter) {
			result = append(result, condition)
		}
	}
	return result
}
