package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bodysignal/internal/services"
)

// GetBodyMap aggregates one day (?date=) or an inclusive range (?from=&to=).
// Without parameters it covers today.
func (handler *Handler) GetBodyMap(c *fiber.Ctx) error {
	date, err := parseDateQuery(c.Query("date"), handler.today())
	if err != nil {
		return handler.serviceError(c, err)
	}
	from, to, err := services.ParseDateRange(c.Query("from"), c.Query("to"), date)
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

	done := handler.metrics.ObserveAggregation("body_map")
	regions := services.BuildBodyMap(conditions, logs, from, to, handler.location, handler.currentThresholds().BodyMapSeverity)
	done()

	language := currentLanguage(c)
	view := bodyMapView{From: from, To: to, Regions: make([]regionView, 0, len(regions))}
	for _, region := range regions {
		view.Regions = append(view.Regions, regionView{
			RegionIntensity: region,
			Label:           handler.i18n.RegionLabel(language, region.Region),
		})
	}
	return c.JSON(view)
}
