package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bodysignal/internal/services"
)

func (handler *Handler) GetHistory(c *fiber.Ctx) error {
	granularity, err := services.ParseGranularity(c.Query("granularity"))
	if err != nil {
		return handler.serviceError(c, err)
	}

	conditions, err := handler.conditionService.ListConditions()
	if err != nil {
		return handler.serviceError(c, err)
	}
	logs, err := handler.logService.ListLogs()
	if err != nil {
		return handler.serviceError(c, err)
	}

	done := handler.metrics.ObserveAggregation("history")
	groups := services.BuildHistory(conditions, logs, services.HistoryQuery{
		Granularity: granularity,
		ConditionID: c.Query("condition"),
		Now:         handler.now(),
		WeekStart:   handler.weekStart,
		Location:    handler.location,
	})
	done()

	language := currentLanguage(c)
	view := make([]historyGroupView, 0, len(groups))
	for _, group := range groups {
		label := handler.i18n.GroupLabel(language, group.Label)
		summary := group.Summary
		summary.Label = label
		view = append(view, historyGroupView{
			Label:   label,
			Summary: summary,
			Entries: handler.historyEntriesView(language, group.Entries),
		})
	}
	return c.JSON(view)
}
