package api

import (
	"github.com/terraincognita07/bodysignal/internal/services"
)

type logWithDeltaView struct {
	services.LogWithDelta
	TrendText string `json:"trend_text"`
}

type conditionCardView struct {
	services.ConditionCard
	SinceLastText string `json:"since_last_text,omitempty"`
	DetailLabel   string `json:"detail_label"`
}

type conditionDetailView struct {
	Card       conditionCardView  `json:"card"`
	RecentLogs []logWithDeltaView `json:"recent_logs"`
	Chronology []logWithDeltaView `json:"chronology"`
}

type dashboardView struct {
	Filter         services.DashboardFilter `json:"filter"`
	FilterLabel    string                   `json:"filter_label"`
	ActiveCount    int                      `json:"active_count"`
	TotalLogs      int                      `json:"total_logs"`
	CriticalCount  int                      `json:"critical_count"`
	ImprovedCount  int                      `json:"improved_count"`
	WeeklyAverage  float64                  `json:"weekly_average"`
	WeeklyLogCount int                      `json:"weekly_log_count"`
	Cards          []conditionCardView      `json:"cards"`
}

type historyEntryView struct {
	services.HistoryEntry
	TrendText string `json:"trend_text"`
}

type historyGroupView struct {
	Label   string                 `json:"label"`
	Summary services.PeriodSummary `json:"summary"`
	Entries []historyEntryView     `json:"entries"`
}

type dayDetailView struct {
	Date        services.DateKey    `json:"date"`
	Summary     services.DaySummary `json:"summary"`
	BucketLabel string              `json:"bucket_label"`
	Entries     []historyEntryView  `json:"entries"`
}

type regionView struct {
	services.RegionIntensity
	Label string `json:"label"`
}

type bodyMapView struct {
	From    services.DateKey `json:"from"`
	To      services.DateKey `json:"to"`
	Regions []regionView     `json:"regions"`
}

func (handler *Handler) logsWithDeltaView(language string, logs []services.LogWithDelta) []logWithDeltaView {
	result := make([]logWithDeltaView, 0, len(logs))
	for _, entry := range logs {
		result = append(result, logWithDeltaView{
			LogWithDelta: entry,
			TrendText:    handler.i18n.TrendText(language, entry.Delta),
		})
	}
	return result
}

func (handler *Handler) cardView(language string, card services.ConditionCard) conditionCardView {
	view := conditionCardView{
		ConditionCard: card,
		DetailLabel:   handler.i18n.BucketLabel(language, card.DetailBucket),
	}
	if card.SinceLast != nil {
		view.SinceLastText = handler.i18n.TrendText(language, *card.SinceLast)
	}
	return view
}

func (handler *Handler) historyEntriesView(language string, entries []services.HistoryEntry) []historyEntryView {
	result := make([]historyEntryView, 0, len(entries))
	for _, entry := range entries {
		entry.ConditionLabel = handler.i18n.ConditionLabel(language, entry.ConditionLabel, entry.KnownCondition)
		result = append(result, historyEntryView{
			HistoryEntry: entry,
			TrendText:    handler.i18n.TrendText(language, entry.Delta),
		})
	}
	return result
}
