package cli

import (
	"time"

	"github.com/terraincognita07/bodysignal/internal/db"
	"github.com/terraincognita07/bodysignal/internal/services"
	"gorm.io/gorm"
)

type commandServices struct {
	conditions *services.ConditionService
	logs       *services.LogService
	stats      *services.StatsService
	export     *services.ExportService
}

func newCommandServices(database *gorm.DB, now func() time.Time) commandServices {
	repositories := db.NewRepositories(database)
	conditions := services.NewConditionService(repositories.Conditions, now)
	logs := services.NewLogService(repositories.Logs, conditions, now)
	return commandServices{
		conditions: conditions,
		logs:       logs,
		stats:      services.NewStatsService(conditions, logs),
		export:     services.NewExportService(conditions, logs, repositories.Store),
	}
}
