package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/bodysignal/internal/models"
)

func TestExportFileName(t *testing.T) {
	location := time.FixedZone("UTC+3", 3*60*60)
	if got := ExportFileName(mustTime("2026-03-10T22:30:00Z"), location); got != "body-signal-backup-2026-03-11.json" {
		t.Fatalf("ExportFileName() = %q", got)
	}
}

func TestExportDocumentRoundTrip(t *testing.T) {
	store := dashboardFixture()
	service := NewExportService(store, store, store)

	document, err := service.BuildDocument(fixedNow())
	if err != nil {
		t.Fatalf("BuildDocument() unexpected error: %v", err)
	}
	raw, err := EncodeExportDocument(document)
	if err != nil {
		t.Fatalf("EncodeExportDocument() unexpected error: %v", err)
	}
	if !strings.Contains(string(raw), "\n  \"conditions\"") || !strings.Contains(string(raw), "2026-03-10T15:00:00Z") {
		t.Fatalf("expected indented document, got %s", raw)
	}

	decoded, err := DecodeExportDocument(raw)
	if err != nil {
		t.Fatalf("DecodeExportDocument() unexpected error: %v", err)
	}
	if !decoded.ExportedAt.Equal(fixedNow()) {
		t.Fatalf("exported_at = %s", decoded.ExportedAt)
	}
	if len(decoded.Conditions) != len(document.Conditions) || len(decoded.Logs) != len(document.Logs) {
		t.Fatalf("decoded sizes = %d/%d", len(decoded.Conditions), len(decoded.Logs))
	}
	for index, logEntry := range decoded.Logs {
		original := document.Logs[index]
		if logEntry.ID != original.ID || logEntry.Intensity != original.Intensity || !logEntry.Timestamp.Equal(original.Timestamp) {
			t.Fatalf("log %d = %#v, want %#v", index, logEntry, original)
		}
	}
}

func TestEncodeEmptyDocumentUsesArrays(t *testing.T) {
	raw, err := EncodeExportDocument(ExportDocument{})
	if err != nil {
		t.Fatalf("EncodeExportDocument() unexpected error: %v", err)
	}
	if strings.Contains(string(raw), "null") {
		t.Fatalf("expected empty arrays, got %s", raw)
	}
}

func TestImportReplacesStore(t *testing.T) {
	store := dashboardFixture()
	service := NewExportService(store, store, store)

	summary, err := service.Import(ExportDocument{
		Conditions: []models.Condition{{ID: "n", Label: "New", Region: models.RegionHead}},
		Logs: []models.SymptomLog{
			logAt("l1", "n", "2026-03-01T09:00:00Z", 4, 0),
			logAt("l2", "missing", "2026-03-02T09:00:00Z", 5, 0),
		},
	})
	if err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}
	if summary != (ImportSummary{Conditions: 1, Logs: 2, DanglingLogs: 1}) {
		t.Fatalf("Import() summary = %#v", summary)
	}
	if len(store.conditions) != 1 || len(store.logs) != 2 {
		t.Fatalf("store = %d conditions %d logs", len(store.conditions), len(store.logs))
	}
}

func TestImportRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name     string
		document ExportDocument
	}{
		{name: "condition without id", document: ExportDocument{Conditions: []models.Condition{{Label: "x"}}}},
		{name: "duplicate condition", document: ExportDocument{Conditions: []models.Condition{{ID: "a", Label: "x"}, {ID: "a", Label: "y"}}}},
		{name: "unknown region", document: ExportDocument{Conditions: []models.Condition{{ID: "a", Label: "x", Region: "tail"}}}},
		{name: "intensity out of range", document: ExportDocument{Logs: []models.SymptomLog{logAt("l", "a", "2026-03-01T09:00:00Z", 12, 0)}}},
		{name: "log without date", document: ExportDocument{Logs: []models.SymptomLog{{ID: "l", ConditionID: "a", Intensity: 3}}}},
		{name: "notes too long", document: ExportDocument{Logs: []models.SymptomLog{longNotesLog()}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := dashboardFixture()
			service := NewExportService(store, store, store)
			if _, err := service.Import(tt.document); !errors.Is(err, ErrInvalidExportDocument) {
				t.Fatalf("Import() error = %v, want ErrInvalidExportDocument", err)
			}
			if len(store.conditions) != 4 {
				t.Fatal("store must be untouched after a rejected import")
			}
		})
	}
}

func TestDecodeExportDocumentRejectsGarbage(t *testing.T) {
	if _, err := DecodeExportDocument([]byte("{not json")); !errors.Is(err, ErrInvalidExportDocument) {
		t.Fatalf("expected ErrInvalidExportDocument, got %v", err)
	}
}

func TestReset(t *testing.T) {
	store := dashboardFixture()
	service := NewExportService(store, store, store)
	if err := service.Reset(); err != nil {
		t.Fatalf("Reset() unexpected error: %v", err)
	}
	if len(store.conditions) != 0 || len(store.logs) != 0 {
		t.Fatal("expected empty store after reset")
	}

	store.failWrites = true
	if err := service.Reset(); !errors.Is(err, ErrResetFailed) {
		t.Fatalf("expected ErrResetFailed, got %v", err)
	}
}

func longNotesLog() models.SymptomLog {
	logEntry := logAt("l", "a", "2026-03-01T09:00:00Z", 3, 0)
	logEntry.Notes = strings.Repeat("n", MaxLogTextLength+1)
	return logEntry
}
