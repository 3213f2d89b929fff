package i18n

import (
	"github.com/terraincognita07/bodysignal/internal/models"
	"github.com/terraincognita07/bodysignal/internal/services"
)

// TrendText renders a delta as "First Occurrence", "No Change",
// "Worsened (+n)" or "Improved (-n)".
func (manager *Manager) TrendText(language string, delta services.DeltaResult) string {
	switch {
	case delta.IsFirstOccurrence:
		return manager.Translate(language, "trend.first_occurrence")
	case delta.Delta > 0:
		return manager.Translatef(language, "trend.worsened", delta.Delta)
	case delta.Delta < 0:
		return manager.Translatef(language, "trend.improved", -delta.Delta)
	default:
		return manager.Translate(language, "trend.no_change")
	}
}

func (manager *Manager) BucketLabel(language string, bucket services.Bucket) string {
	return manager.Translate(language, "bucket."+string(bucket))
}

func (manager *Manager) RegionLabel(language string, region models.BodyRegion) string {
	return manager.Translate(language, "region."+string(region))
}

func (manager *Manager) FilterLabel(language string, filter services.DashboardFilter) string {
	return manager.Translate(language, "filter."+string(filter))
}

// GroupLabel localizes the relative day labels; other labels pass through.
func (manager *Manager) GroupLabel(language string, label string) string {
	switch label {
	case services.LabelToday:
		return manager.Translate(language, "label.today")
	case services.LabelYesterday:
		return manager.Translate(language, "label.yesterday")
	default:
		return label
	}
}

// ConditionLabel returns label, or the localized placeholder when the
// condition no longer exists.
func (manager *Manager) ConditionLabel(language string, label string, known bool) string {
	if !known {
		return manager.Translate(language, "label.unknown_condition")
	}
	return label
}
