package api

import (
	"github.com/terraincognita07/bodysignal/internal/db"
	"github.com/terraincognita07/bodysignal/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.conditionService = services.NewConditionService(handler.repositories.Conditions, handler.now)
	handler.logService = services.NewLogService(handler.repositories.Logs, handler.conditionService, handler.now)
	handler.statsService = services.NewStatsService(handler.conditionService, handler.logService)
	handler.exportService = services.NewExportService(handler.conditionService, handler.logService, handler.repositories.Store)
	return handler
}
