package cli

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/bodysignal/internal/db"
	"github.com/terraincognita07/bodysignal/internal/models"
	"github.com/terraincognita07/bodysignal/internal/services"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "bodysignal.db"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.CloseSQLite(database))
	})
	return database
}

func seedCondition(t *testing.T, database *gorm.DB, label string, region string, intensities ...int) models.Condition {
	t.Helper()

	commands := newCommandServices(database, func() time.Time { return testNow })
	condition, err := commands.conditions.CreateCondition(services.ConditionInput{Label: label, Region: region}, time.UTC)
	require.NoError(t, err)

	for index, intensity := range intensities {
		day := testNow.AddDate(0, 0, index-len(intensities)+1).Format("2006-01-02")
		_, _, err := commands.logs.CreateLog(services.LogInput{
			ConditionID: condition.ID,
			Timestamp:   day,
			Intensity:   intensity,
		}, time.UTC)
		require.NoError(t, err)
	}
	return condition
}

func countRows(t *testing.T, database *gorm.DB) (int64, int64) {
	t.Helper()

	var conditions, logs int64
	require.NoError(t, database.Model(&models.Condition{}).Count(&conditions).Error)
	require.NoError(t, database.Model(&models.SymptomLog{}).Count(&logs).Error)
	return conditions, logs
}
