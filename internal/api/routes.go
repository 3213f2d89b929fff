package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	if handler.metrics != nil {
		app.Get("/metrics", handler.metrics.Handler())
	}
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	conditions := api.Group("/conditions")
	conditions.Get("", handler.ListConditions)
	conditions.Post("", handler.CreateCondition)
	conditions.Get("/:id", handler.GetCondition)
	conditions.Patch("/:id", handler.UpdateCondition)
	conditions.Post("/:id/archive", handler.ArchiveCondition)
	conditions.Post("/:id/unarchive", handler.UnarchiveCondition)

	logs := api.Group("/logs")
	logs.Get("", handler.ListLogs)
	logs.Post("", handler.CreateLog)

	api.Get("/dashboard", handler.GetDashboard)

	calendar := api.Group("/calendar")
	calendar.Get("/heatmap", handler.GetHeatmap)
	calendar.Get("/month", handler.GetMonth)
	calendar.Get("/day/:date", handler.GetCalendarDay)

	api.Get("/history", handler.GetHistory)
	api.Get("/body-map", handler.GetBodyMap)

	api.Get("/export", handler.ExportJSON)
	api.Post("/import", handler.ImportJSON)
	api.Post("/reset", handler.ResetData)
}
