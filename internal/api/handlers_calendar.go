package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bodysignal/internal/services"
)

// GetHeatmap serves the rolling grid that ends with the anchor's week.
func (handler *Handler) GetHeatmap(c *fiber.Ctx) error {
	mode, err := services.ParseAggregationMode(c.Query("mode"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	lookback, err := parseLookbackQuery(c.Query("lookback"), handler.lookbackDays)
	if err != nil {
		return handler.serviceError(c, err)
	}
	anchor, err := handler.anchorQuery(c.Query("anchor"))
	if err != nil {
		return handler.serviceError(c, err)
	}

	logs, err := handler.logService.ListLogs()
	if err != nil {
		return handler.serviceError(c, err)
	}

	done := handler.metrics.ObserveAggregation("heatmap")
	grid := services.BuildCalendarGrid(services.GridRequest{
		Anchor:       anchor,
		LookbackDays: lookback,
		WeekStart:    handler.weekStart,
		Mode:         mode,
		ConditionID:  c.Query("condition"),
		Location:     handler.location,
	}, logs, handler.currentThresholds())
	done()
	return c.JSON(grid)
}

func (handler *Handler) GetMonth(c *fiber.Ctx) error {
	mode, err := services.ParseAggregationMode(c.Query("mode"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	month, err := parseMonthQuery(c.Query("month"), handler.today())
	if err != nil {
		return handler.serviceError(c, err)
	}

	logs, err := handler.logService.ListLogs()
	if err != nil {
		return handler.serviceError(c, err)
	}

	done := handler.metrics.ObserveAggregation("month")
	grid := services.BuildCalendarGrid(services.GridRequest{
		Anchor:      handler.now(),
		Month:       month,
		WeekStart:   handler.weekStart,
		Mode:        mode,
		ConditionID: c.Query("condition"),
		Location:    handler.location,
	}, logs, handler.currentThresholds())
	done()
	return c.JSON(grid)
}

func (handler *Handler) GetCalendarDay(c *fiber.Ctx) error {
	date, err := services.ParseDateKey(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "error.invalid_date")
	}

	conditions, err := handler.conditionService.ListConditions()
	if err != nil {
		return handler.serviceError(c, err)
	}
	logs, err := handler.logService.ListLogs()
	if err != nil {
		return handler.serviceError(c, err)
	}

	detail := services.BuildDayDetail(conditions, logs, date, handler.location, handler.currentThresholds().MonthSeverity)
	language := currentLanguage(c)
	return c.JSON(dayDetailView{
		Date:        detail.Date,
		Summary:     detail.Summary,
		BucketLabel: handler.i18n.BucketLabel(language, detail.Summary.Bucket),
		Entries:     handler.historyEntriesView(language, detail.Entries),
	})
}

// anchorQuery maps an optional YYYY-MM-DD to noon of that day so the grid
// sees the intended calendar day in the configured zone.
func (handler *Handler) anchorQuery(raw string) (time.Time, error) {
	date, err := parseDateQuery(raw, services.DateKey{})
	if err != nil {
		return time.Time{}, err
	}
	if date.IsZero() {
		return handler.now(), nil
	}
	return date.Time(handler.location).Add(12 * time.Hour), nil
}
