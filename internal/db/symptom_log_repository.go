package db

import (
	"github.com/terraincognita07/bodysignal/internal/models"
	"gorm.io/gorm"
)

type SymptomLogRepository struct {
	database *gorm.DB
}

func NewSymptomLogRepository(database *gorm.DB) *SymptomLogRepository {
	return &SymptomLogRepository{database: database}
}

// List returns logs in insertion order, not time order.
func (repo *SymptomLogRepository) List() ([]models.SymptomLog, error) {
	logs := make([]models.SymptomLog, 0)
	if err := repo.database.Order("seq ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *SymptomLogRepository) ListLogs() ([]models.SymptomLog, error) {
	return repo.List()
}

func (repo *SymptomLogRepository) Create(entry *models.SymptomLog) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		return createSymptomLog(tx, entry)
	})
}

func (repo *SymptomLogRepository) CreateWithCondition(condition *models.Condition, entry *models.SymptomLog) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := createCondition(tx, condition); err != nil {
			return err
		}
		entry.ConditionID = condition.ID
		return createSymptomLog(tx, entry)
	})
}

func createSymptomLog(tx *gorm.DB, entry *models.SymptomLog) error {
	seq, err := nextSeq(tx, "symptom_logs")
	if err != nil {
		return err
	}
	entry.Seq = seq
	return tx.Create(entry).Error
}
