package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/terraincognita07/bodysignal/internal/services"
	"gorm.io/gorm"
)

// StdoutPath makes export write the document to stdout.
const StdoutPath = "-"

// RunExport writes the backup document to outPath, or to the dated default
// file name in the working directory when outPath is empty. It returns the
// path written.
func RunExport(database *gorm.DB, outPath string, stdout io.Writer, now time.Time, location *time.Location) (string, error) {
	document, err := newCommandServices(database, nil).export.BuildDocument(now)
	if err != nil {
		return "", fmt.Errorf("load data: %w", err)
	}
	serialized, err := services.EncodeExportDocument(document)
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}

	if outPath == StdoutPath {
		if _, err := stdout.Write(append(serialized, '\n')); err != nil {
			return "", err
		}
		return StdoutPath, nil
	}

	if outPath == "" {
		outPath = services.ExportFileName(now, location)
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create export directory: %w", err)
		}
	}
	if err := os.WriteFile(outPath, serialized, 0o600); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}

	fmt.Fprintf(stdout, "Exported %d conditions and %d logs to %s\n", len(document.Conditions), len(document.Logs), outPath)
	return outPath, nil
}
