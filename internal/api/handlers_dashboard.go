package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bodysignal/internal/services"
)

func (handler *Handler) GetDashboard(c *fiber.Ctx) error {
	filter, err := services.ParseDashboardFilter(c.Query("filter"))
	if err != nil {
		return handler.serviceError(c, err)
	}

	done := handler.metrics.ObserveAggregation("dashboard")
	overview, err := handler.statsService.BuildDashboard(services.DashboardOptions{
		Filter:          filter,
		IncludeArchived: c.QueryBool("include_archived"),
		Now:             handler.now(),
	}, handler.currentThresholds())
	done()
	if err != nil {
		return handler.serviceError(c, err)
	}

	language := currentLanguage(c)
	view := dashboardView{
		Filter:         overview.Filter,
		FilterLabel:    handler.i18n.FilterLabel(language, overview.Filter),
		ActiveCount:    overview.ActiveCount,
		TotalLogs:      overview.TotalLogs,
		CriticalCount:  overview.CriticalCount,
		ImprovedCount:  overview.ImprovedCount,
		WeeklyAverage:  overview.WeeklyAverage,
		WeeklyLogCount: overview.WeeklyLogCount,
		Cards:          make([]conditionCardView, 0, len(overview.Cards)),
	}
	for _, card := range overview.Cards {
		view.Cards = append(view.Cards, handler.cardView(language, card))
	}
	return c.JSON(view)
}
