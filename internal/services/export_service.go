package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/terraincognita07/bodysignal/internal/models"
)

var (
	ErrInvalidExportDocument = errors.New("invalid export document")
	ErrImportFailed          = errors.New("import failed")
	ErrResetFailed           = errors.New("reset failed")
)

const exportFilePrefix = "body-signal-backup-"

// ExportDocument is the lossless backup of both collections.
type ExportDocument struct {
	ExportedAt time.Time           `json:"exported_at"`
	Conditions []models.Condition  `json:"conditions"`
	Logs       []models.SymptomLog `json:"logs"`
}

type ExportRepository interface {
	// ReplaceAll swaps the stored collections for the given ones in one
	// transaction, keeping slice order as insertion order.
	ReplaceAll(conditions []models.Condition, logs []models.SymptomLog) error
	DeleteAll() error
}

type ExportConditionReader interface {
	ListConditions() ([]models.Condition, error)
}

type ExportLogReader interface {
	ListLogs() ([]models.SymptomLog, error)
}

type ExportService struct {
	conditions ExportConditionReader
	logs       ExportLogReader
	store      ExportRepository
}

type ImportSummary struct {
	Conditions int `json:"conditions"`
	Logs       int `json:"logs"`
	// DanglingLogs counts logs whose condition is missing from the document.
	DanglingLogs int `json:"dangling_logs"`
}

func NewExportService(conditions ExportConditionReader, logs ExportLogReader, store ExportRepository) *ExportService {
	return &ExportService{
		conditions: conditions,
		logs:       logs,
		store:      store,
	}
}

func (service *ExportService) BuildDocument(now time.Time) (ExportDocument, error) {
	conditions, err := service.conditions.ListConditions()
	if err != nil {
		return ExportDocument{}, err
	}
	logs, err := service.logs.ListLogs()
	if err != nil {
		return ExportDocument{}, err
	}
	return ExportDocument{ExportedAt: now.UTC(), Conditions: conditions, Logs: logs}, nil
}

func (service *ExportService) Import(document ExportDocument) (ImportSummary, error) {
	summary, err := ValidateExportDocument(document)
	if err != nil {
		return ImportSummary{}, err
	}
	if err := service.store.ReplaceAll(document.Conditions, document.Logs); err != nil {
		return ImportSummary{}, fmt.Errorf("%w: %v", ErrImportFailed, err)
	}
	return summary, nil
}

func (service *ExportService) Reset() error {
	if err := service.store.DeleteAll(); err != nil {
		return fmt.Errorf("%w: %v", ErrResetFailed, err)
	}
	return nil
}

// ValidateExportDocument checks ids and intensities. Logs pointing at a
// missing condition are accepted and reported as dangling.
func ValidateExportDocument(document ExportDocument) (ImportSummary, error) {
	conditionIDs := make(map[string]struct{}, len(document.Conditions))
	for index, condition := range document.Conditions {
		id := strings.TrimSpace(condition.ID)
		if id == "" {
			return ImportSummary{}, fmt.Errorf("%w: condition %d has no id", ErrInvalidExportDocument, index)
		}
		if _, exists := conditionIDs[id]; exists {
			return ImportSummary{}, fmt.Errorf("%w: duplicate condition id %q", ErrInvalidExportDocument, id)
		}
		if strings.TrimSpace(condition.Label) == "" {
			return ImportSummary{}, fmt.Errorf("%w: condition %q has no label", ErrInvalidExportDocument, id)
		}
		if _, ok := models.ParseBodyRegion(string(condition.Region)); !ok {
			return ImportSummary{}, fmt.Errorf("%w: condition %q has unknown region %q", ErrInvalidExportDocument, id, condition.Region)
		}
		conditionIDs[id] = struct{}{}
	}

	summary := ImportSummary{Conditions: len(document.Conditions), Logs: len(document.Logs)}
	logIDs := make(map[string]struct{}, len(document.Logs))
	for index, logEntry := range document.Logs {
		id := strings.TrimSpace(logEntry.ID)
		if id == "" {
			return ImportSummary{}, fmt.Errorf("%w: log %d has no id", ErrInvalidExportDocument, index)
		}
		if _, exists := logIDs[id]; exists {
			return ImportSummary{}, fmt.Errorf("%w: duplicate log id %q", ErrInvalidExportDocument, id)
		}
		if logEntry.Timestamp.IsZero() {
			return ImportSummary{}, fmt.Errorf("%w: log %q has no date", ErrInvalidExportDocument, id)
		}
		if err := ValidateIntensity(logEntry.Intensity); err != nil {
			return ImportSummary{}, fmt.Errorf("%w: log %q: %v", ErrInvalidExportDocument, id, err)
		}
		if err := ValidateLogText(logEntry.Medication, logEntry.Notes); err != nil {
			return ImportSummary{}, fmt.Errorf("%w: log %q: %v", ErrInvalidExportDocument, id, err)
		}
		if _, ok := conditionIDs[logEntry.ConditionID]; !ok {
			summary.DanglingLogs++
		}
		logIDs[id] = struct{}{}
	}
	return summary, nil
}

func EncodeExportDocument(document ExportDocument) ([]byte, error) {
	if document.Conditions == nil {
		document.Conditions = []models.Condition{}
	}
	if document.Logs == nil {
		document.Logs = []models.SymptomLog{}
	}
	return sonic.MarshalIndent(document, "", "  ")
}

func DecodeExportDocument(raw []byte) (ExportDocument, error) {
	document := ExportDocument{}
	if err := sonic.Unmarshal(raw, &document); err != nil {
		return ExportDocument{}, fmt.Errorf("%w: %v", ErrInvalidExportDocument, err)
	}
	for index := range document.Conditions {
		if document.Conditions[index].Region == "" {
			document.Conditions[index].Region = models.RegionGeneral
		}
		if region, ok := models.ParseBodyRegion(string(document.Conditions[index].Region)); ok {
			document.Conditions[index].Region = region
		}
	}
	return document, nil
}

func ExportFileName(now time.Time, location *time.Location) string {
	return exportFilePrefix + DateKeyOf(now, location).String() + ".json"
}
