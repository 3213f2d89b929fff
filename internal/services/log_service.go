package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/terraincognita07/bodysignal/internal/models"
)

var (
	ErrInvalidLogTimestamp = errors.New("invalid log timestamp")
	ErrCreateLogFailed     = errors.New("create log failed")
	ErrLogsLoadFailed      = errors.New("load logs failed")
	ErrLogTextTooLong      = errors.New("log text too long")
)

// MaxLogTextLength limits medication and notes, in runes.
const MaxLogTextLength = 2000

type LogRepository interface {
	List() ([]models.SymptomLog, error)
	Create(entry *models.SymptomLog) error
	// CreateWithCondition stores a new condition and its first log atomically.
	CreateWithCondition(condition *models.Condition, entry *models.SymptomLog) error
}

type LogInput struct {
	ConditionID string
	// NewCondition creates the owning condition in the same write. It wins
	// over ConditionID.
	NewCondition *ConditionInput
	Timestamp    string
	Intensity    int
	Medication   string
	Notes        string
}

type LogService struct {
	logs       LogRepository
	conditions *ConditionService
	now        func() time.Time
}

func NewLogService(logs LogRepository, conditions *ConditionService, now func() time.Time) *LogService {
	if now == nil {
		now = time.Now
	}
	return &LogService{
		logs:       logs,
		conditions: conditions,
		now:        now,
	}
}

// ListLogs returns every log in insertion order.
func (service *LogService) ListLogs() ([]models.SymptomLog, error) {
	logs, err := service.logs.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogsLoadFailed, err)
	}
	return logs, nil
}

// ListLogsDescending returns logs most recent first, optionally limited to
// one condition.
func (service *LogService) ListLogsDescending(conditionID string) ([]models.SymptomLog, error) {
	logs, err := service.ListLogs()
	if err != nil {
		return nil, err
	}
	conditionID = strings.TrimSpace(conditionID)
	filtered := make([]models.SymptomLog, 0, len(logs))
	for _, logEntry := range logs {
		if conditionID == "" || logEntry.ConditionID == conditionID {
			filtered = append(filtered, logEntry)
		}
	}
	SortLogsDescending(filtered)
	return filtered, nil
}

func (service *LogService) CreateLog(input LogInput, location *time.Location) (models.SymptomLog, *models.Condition, error) {
	if err := ValidateIntensity(input.Intensity); err != nil {
		return models.SymptomLog{}, nil, err
	}
	timestamp, err := service.parseTimestamp(input.Timestamp, location)
	if err != nil {
		return models.SymptomLog{}, nil, err
	}

	entry := models.SymptomLog{
		ID:         uuid.NewString(),
		Timestamp:  timestamp,
		Intensity:  input.Intensity,
		Medication: strings.TrimSpace(input.Medication),
		Notes:      strings.TrimSpace(input.Notes),
	}
	if err := ValidateLogText(entry.Medication, entry.Notes); err != nil {
		return models.SymptomLog{}, nil, err
	}

	if input.NewCondition != nil {
		condition, err := service.conditions.BuildCondition(*input.NewCondition, location)
		if err != nil {
			return models.SymptomLog{}, nil, err
		}
		entry.ConditionID = condition.ID
		if err := service.logs.CreateWithCondition(&condition, &entry); err != nil {
			return models.SymptomLog{}, nil, fmt.Errorf("%w: %v", ErrCreateLogFailed, err)
		}
		return entry, &condition, nil
	}

	condition, err := service.conditions.FindCondition(input.ConditionID)
	if err != nil {
		return models.SymptomLog{}, nil, err
	}
	entry.ConditionID = condition.ID
	if err := service.logs.Create(&entry); err != nil {
		return models.SymptomLog{}, nil, fmt.Errorf("%w: %v", ErrCreateLogFailed, err)
	}
	return entry, nil, nil
}

// parseTimestamp accepts RFC 3339 instants, local "2006-01-02T15:04" form
// values and bare dates (noon local). Empty means now.
func (service *LogService) parseTimestamp(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return service.now().UTC(), nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.UTC(), nil
	}
	if parsed, err := time.ParseInLocation("2006-01-02T15:04", value, location); err == nil {
		return parsed.UTC(), nil
	}
	if parsed, err := time.ParseInLocation(dateKeyLayout, value, location); err == nil {
		return parsed.Add(12 * time.Hour).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidLogTimestamp, raw)
}

func ValidateLogText(medication string, notes string) error {
	if utf8.RuneCountInString(medication) > MaxLogTextLength {
		return fmt.Errorf("%w: medication exceeds %d characters", ErrLogTextTooLong, MaxLogTextLength)
	}
	if utf8.RuneCountInString(notes) > MaxLogTextLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrLogTextTooLong, MaxLogTextLength)
	}
	return nil
}
