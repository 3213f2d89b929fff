package services

import (
	"errors"

	"github.com/terraincognita07/bodysignal/internal/models"
)

var errStoreUnavailable = errors.New("store unavailable")

type memoryStore struct {
	conditions []models.Condition
	logs       []models.SymptomLog
	failWrites bool
}

func (store *memoryStore) List() ([]models.Condition, error) {
	return append([]models.Condition(nil), store.conditions...), nil
}

func (store *memoryStore) FindByID(conditionID string) (models.Condition, bool, error) {
	for _, condition := range store.conditions {
		if condition.ID == conditionID {
			return condition, true, nil
		}
	}
	return models.Condition{}, false, nil
}

func (store *memoryStore) Create(condition *models.Condition) error {
	if store.failWrites {
		return errStoreUnavailable
	}
	condition.Seq = int64(len(store.conditions) + 1)
	store.conditions = append(store.conditions, *condition)
	return nil
}

func (store *memoryStore) Save(condition *models.Condition) error {
	if store.failWrites {
		return errStoreUnavailable
	}
	for index := range store.conditions {
		if store.conditions[index].ID == condition.ID {
			store.conditions[index] = *condition
			return nil
		}
	}
	return errors.New("missing condition")
}

type memoryLogs struct {
	store *memoryStore
}

func (logs memoryLogs) List() ([]models.SymptomLog, error) {
	return append([]models.SymptomLog(nil), logs.store.logs...), nil
}

func (logs memoryLogs) Create(entry *models.SymptomLog) error {
	if logs.store.failWrites {
		return errStoreUnavailable
	}
	entry.Seq = int64(len(logs.store.logs) + 1)
	logs.store.logs = append(logs.store.logs, *entry)
	return nil
}

func (logs memoryLogs) CreateWithCondition(condition *models.Condition, entry *models.SymptomLog) error {
	if err := logs.store.Create(condition); err != nil {
		return err
	}
	return logs.Create(entry)
}

func (store *memoryStore) ListConditions() ([]models.Condition, error) {
	return store.List()
}

func (store *memoryStore) ListLogs() ([]models.SymptomLog, error) {
	return append([]models.SymptomLog(nil), store.logs...), nil
}

func (store *memoryStore) ReplaceAll(conditions []models.Condition, logs []models.SymptomLog) error {
	if store.failWrites {
		return errStoreUnavailable
	}
	store.conditions = append([]models.Condition(nil), conditions...)
	store.logs = append([]models.SymptomLog(nil), logs...)
	return nil
}

func (store *memoryStore) DeleteAll() error {
	if store.failWrites {
		return errStoreUnavailable
	}
	store.conditions = nil
	store.logs = nil
	return nil
}
