package services

import (
	"time"

	"github.com/terraincognita07/bodysignal/internal/models"
)

const (
	DefaultLookbackDays = 84
	// MaxLookbackDays caps a rolling grid at roughly ten years.
	MaxLookbackDays = 3660
)

type GridRequest struct {
	// Anchor is "today" for the grid. Rolling grids end with its week.
	Anchor       time.Time
	LookbackDays int
	// Month selects month mode when non-zero; only year and month are read.
	Month       DateKey
	WeekStart   time.Weekday
	Mode        AggregationMode
	ConditionID string
	Location    *time.Location
}

type GridCell struct {
	Date     DateKey             `json:"date"`
	Day      int                 `json:"day"`
	Padding  bool                `json:"padding"`
	IsToday  bool                `json:"is_today"`
	IsFuture bool                `json:"is_future"`
	Logs     []models.SymptomLog `json:"logs"`
	Summary  DaySummary          `json:"summary"`
}

type CalendarGrid struct {
	Mode  AggregationMode `json:"mode"`
	Start DateKey         `json:"start"`
	End   DateKey         `json:"end"`
	Weeks int             `json:"weeks"`
	Cells []GridCell      `json:"cells"`
}

func (request GridRequest) IsMonthMode() bool {
	return !request.Month.IsZero()
}

// GridBounds returns the half-open [start, end) day range of the grid. Both
// ends sit on week boundaries.
func GridBounds(request GridRequest) (DateKey, DateKey) {
	if request.IsMonthMode() {
		first := FirstOfMonth(request.Month)
		last := LastOfMonth(request.Month)
		return StartOfWeek(first, request.WeekStart), StartOfWeek(last, request.WeekStart).AddDays(7)
	}

	lookback := min(max(request.LookbackDays, 0), MaxLookbackDays)
	anchor := DateKeyOf(request.Anchor, request.Location)
	return StartOfWeek(anchor.AddDays(-lookback), request.WeekStart), StartOfWeek(anchor, request.WeekStart).AddDays(7)
}

// BuildCalendarGrid places logs on a gap-free grid of whole weeks. Every
// cell carries a summary; cells without logs get the empty bucket of the mode.
func BuildCalendarGrid(request GridRequest, logs []models.SymptomLog, thresholds Thresholds) CalendarGrid {
	location := request.Location
	if location == nil {
		location = time.UTC
	}
	mode := request.Mode
	if mode == "" {
		mode = ModeSeverity
	}
	severity := thresholds.HeatmapSeverity
	if request.IsMonthMode() {
		severity = thresholds.MonthSeverity
	}

	var deltas map[string]DeltaResult
	if mode == ModeDelta {
		deltas = DeltaIndex(logs)
	}

	logsByDate := make(map[DateKey][]models.SymptomLog)
	for _, logEntry := range logs {
		if request.ConditionID != "" && logEntry.ConditionID != request.ConditionID {
			continue
		}
		key := DateKeyOf(logEntry.Timestamp, location)
		logsByDate[key] = append(logsByDate[key], logEntry)
	}

	start, end := GridBounds(request)
	today := DateKeyOf(request.Anchor, location)

	cells := make([]GridCell, 0, 42)
	for day := start; day.Before(end); day = day.AddDays(1) {
		if request.IsMonthMode() && (day.Year != request.Month.Year || day.Month != request.Month.Month) {
			cells = append(cells, GridCell{
				Padding: true,
				Logs:    []models.SymptomLog{},
				Summary: summarizeCell(mode, nil, deltas, severity, thresholds.Delta),
			})
			continue
		}

		dayLogs := logsByDate[day]
		SortLogsAscending(dayLogs)
		if dayLogs == nil {
			dayLogs = []models.SymptomLog{}
		}
		cells = append(cells, GridCell{
			Date:     day,
			Day:      day.Day,
			IsToday:  day == today,
			IsFuture: day.After(today),
			Logs:     dayLogs,
			Summary:  summarizeCell(mode, dayLogs, deltas, severity, thresholds.Delta),
		})
	}

	return CalendarGrid{
		Mode:  mode,
		Start: start,
		End:   end,
		Weeks: len(cells) / 7,
		Cells: cells,
	}
}

// CellForDate returns the cell holding date, skipping padding.
func (grid CalendarGrid) CellForDate(date DateKey) (GridCell, bool) {
	for _, cell := range grid.Cells {
		if !cell.Padding && cell.Date == date {
			return cell, true
		}
	}
	return GridCell{}, false
}

func summarizeCell(mode AggregationMode, logs []models.SymptomLog, deltas map[string]DeltaResult, severity SeverityScale, delta DeltaScale) DaySummary {
	if mode == ModeDelta {
		return SummarizeDelta(logs, deltas, delta)
	}
	return SummarizeSeverity(logs, severity)
}
