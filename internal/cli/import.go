package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/bodysignal/internal/services"
	"gorm.io/gorm"
)

// RunImport replaces all stored data with the backup at path.
func RunImport(database *gorm.DB, path string, stdout io.Writer) (services.ImportSummary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return services.ImportSummary{}, fmt.Errorf("read backup: %w", err)
	}
	document, err := services.DecodeExportDocument(raw)
	if err != nil {
		return services.ImportSummary{}, err
	}

	summary, err := newCommandServices(database, nil).export.Import(document)
	if err != nil {
		return services.ImportSummary{}, err
	}

	fmt.Fprintf(stdout, "Imported %d conditions and %d logs\n", summary.Conditions, summary.Logs)
	if summary.DanglingLogs > 0 {
		fmt.Fprintf(stdout, "%d logs reference conditions missing from the backup\n", summary.DanglingLogs)
	}
	return summary, nil
}
