package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/bodysignal/internal/models"
)

var (
	ErrConditionNotFound     = errors.New("condition not found")
	ErrInvalidConditionLabel = errors.New("invalid condition label")
	ErrInvalidBodyRegion     = errors.New("invalid body region")
	ErrInvalidLocationLabel  = errors.New("invalid location label")
	ErrInvalidOnsetDate      = errors.New("invalid onset date")
	ErrCreateConditionFailed = errors.New("create condition failed")
	ErrUpdateConditionFailed = errors.New("update condition failed")
)

const (
	maxConditionLabelLength    = 80
	maxConditionLocationLength = 80
	UnknownConditionLabel      = "Unknown condition"
)

type ConditionRepository interface {
	List() ([]models.Condition, error)
	FindByID(conditionID string) (models.Condition, bool, error)
	Create(condition *models.Condition) error
	Save(condition *models.Condition) error
}

type ConditionInput struct {
	Label     string
	Location  string
	Region    string
	OnsetDate string
}

type ConditionService struct {
	conditions ConditionRepository
	now        func() time.Time
}

func NewConditionService(conditions ConditionRepository, now func() time.Time) *ConditionService {
	if now == nil {
		now = time.Now
	}
	return &ConditionService{
		conditions: conditions,
		now:        now,
	}
}

func (service *ConditionService) ListConditions() ([]models.Condition, error) {
	return service.conditions.List()
}

// ListActiveConditions drops archived conditions and keeps store order.
func (service *ConditionService) ListActiveConditions() ([]models.Condition, error) {
	conditions, err := service.conditions.List()
	if err != nil {
		return nil, err
	}
	active := make([]models.Condition, 0, len(conditions))
	for _, condition := range conditions {
		if !condition.IsArchived {
			active = append(active, condition)
		}
	}
	return active, nil
}

func (service *ConditionService) FindCondition(conditionID string) (models.Condition, error) {
	condition, found, err := service.conditions.FindByID(strings.TrimSpace(conditionID))
	if err != nil {
		return models.Condition{}, err
	}
	if !found {
		return models.Condition{}, ErrConditionNotFound
	}
	return condition, nil
}

// BuildCondition validates input and returns an unsaved condition with a
// fresh id. An empty onset date defaults to today in location.
func (service *ConditionService) BuildCondition(input ConditionInput, location *time.Location) (models.Condition, error) {
	label, err := normalizeConditionLabel(input.Label)
	if err != nil {
		return models.Condition{}, err
	}
	locationLabel := strings.TrimSpace(input.Location)
	if len([]rune(locationLabel)) > maxConditionLocationLength {
		return models.Condition{}, ErrInvalidLocationLabel
	}
	region, ok := models.ParseBodyRegion(input.Region)
	if !ok {
		return models.Condition{}, ErrInvalidBodyRegion
	}

	onset := DateKeyOf(service.now(), location)
	if raw := strings.TrimSpace(input.OnsetDate); raw != "" {
		parsed, err := ParseDateKey(raw)
		if err != nil {
			return models.Condition{}, fmt.Errorf("%w: %v", ErrInvalidOnsetDate, err)
		}
		onset = parsed
	}

	return models.Condition{
		ID:        uuid.NewString(),
		Label:     label,
		Location:  locationLabel,
		Region:    region,
		OnsetDate: onset.Time(time.UTC),
	}, nil
}

func (service *ConditionService) CreateCondition(input ConditionInput, location *time.Location) (models.Condition, error) {
	condition, err := service.BuildCondition(input, location)
	if err != nil {
		return models.Condition{}, err
	}
	if err := service.conditions.Create(&condition); err != nil {
		return models.Condition{}, fmt.Errorf("%w: %v", ErrCreateConditionFailed, err)
	}
	return condition, nil
}

func (service *ConditionService) UpdateCondition(conditionID string, patch models.ConditionPatch) (models.Condition, error) {
	condition, err := service.FindCondition(conditionID)
	if err != nil {
		return models.Condition{}, err
	}

	if patch.Label != nil {
		label, err := normalizeConditionLabel(*patch.Label)
		if err != nil {
			return models.Condition{}, err
		}
		condition.Label = label
	}
	if patch.Location != nil {
		locationLabel := strings.TrimSpace(*patch.Location)
		if len([]rune(locationLabel)) > maxConditionLocationLength {
			return models.Condition{}, ErrInvalidLocationLabel
		}
		condition.Location = locationLabel
	}
	if patch.Region != nil {
		region, ok := models.ParseBodyRegion(string(*patch.Region))
		if !ok {
			return models.Condition{}, ErrInvalidBodyRegion
		}
		condition.Region = region
	}

	if err := service.conditions.Save(&condition); err != nil {
		return models.Condition{}, fmt.Errorf("%w: %v", ErrUpdateConditionFailed, err)
	}
	return condition, nil
}

func (service *ConditionService) SetArchived(conditionID string, archived bool) (models.Condition, error) {
	condition, err := service.FindCondition(conditionID)
	if err != nil {
		return models.Condition{}, err
	}
	if condition.IsArchived == archived {
		return condition, nil
	}

	condition.IsArchived = archived
	if err := service.conditions.Save(&condition); err != nil {
		return models.Condition{}, fmt.Errorf("%w: %v", ErrUpdateConditionFailed, err)
	}
	return condition, nil
}

func normalizeConditionLabel(raw string) (string, error) {
	label := strings.TrimSpace(raw)
	if label == "" || len([]rune(label)) > maxConditionLabelLength {
		return "", ErrInvalidConditionLabel
	}
	return label, nil
}

// ConditionLabels maps condition ids to labels for lookups that must survive
// dangling references; see LabelFor.
type ConditionLabels map[string]string

func NewConditionLabels(conditions []models.Condition) ConditionLabels {
	labels := make(ConditionLabels, len(conditions))
	for _, condition := range conditions {
		labels[condition.ID] = condition.Label
	}
	return labels
}

func (labels ConditionLabels) LabelFor(conditionID string) (string, bool) {
	label, ok := labels[conditionID]
	if !ok {
		return UnknownConditionLabel, false
	}
	return label, true
}
