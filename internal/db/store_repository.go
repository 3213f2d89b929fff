package db

import (
	"github.com/terraincognita07/bodysignal/internal/models"
	"gorm.io/gorm"
)

const importBatchSize = 200

// StoreRepository works on both collections at once.
type StoreRepository struct {
	database *gorm.DB
}

func NewStoreRepository(database *gorm.DB) *StoreRepository {
	return &StoreRepository{database: database}
}

func (repo *StoreRepository) DeleteAll() error {
	return repo.database.Transaction(deleteAll)
}

// ReplaceAll drops both collections and inserts the given ones, numbering
// them in slice order.
func (repo *StoreRepository) ReplaceAll(conditions []models.Condition, logs []models.SymptomLog) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := deleteAll(tx); err != nil {
			return err
		}

		if len(conditions) > 0 {
			rows := make([]models.Condition, len(conditions))
			copy(rows, conditions)
			for index := range rows {
				rows[index].Seq = int64(index + 1)
			}
			if err := tx.CreateInBatches(&rows, importBatchSize).Error; err != nil {
				return err
			}
		}

		if len(logs) > 0 {
			rows := make([]models.SymptomLog, len(logs))
			copy(rows, logs)
			for index := range rows {
				rows[index].Seq = int64(index + 1)
				rows[index].Timestamp = rows[index].Timestamp.UTC()
			}
			if err := tx.CreateInBatches(&rows, importBatchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func deleteAll(tx *gorm.DB) error {
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.SymptomLog{}).Error; err != nil {
		return err
	}
	return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Condition{}).Error
}
