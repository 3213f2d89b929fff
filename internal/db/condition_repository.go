package db

import (
	"github.com/terraincognita07/bodysignal/internal/models"
	"gorm.io/gorm"
)

type ConditionRepository struct {
	database *gorm.DB
}

func NewConditionRepository(database *gorm.DB) *ConditionRepository {
	return &ConditionRepository{database: database}
}

// List returns conditions in insertion order.
func (repo *ConditionRepository) List() ([]models.Condition, error) {
	conditions := make([]models.Condition, 0)
	if err := repo.database.Order("seq ASC").Find(&conditions).Error; err != nil {
		return nil, err
	}
	return conditions, nil
}

func (repo *ConditionRepository) ListConditions() ([]models.Condition, error) {
	return repo.List()
}

func (repo *ConditionRepository) FindByID(conditionID string) (models.Condition, bool, error) {
	condition := models.Condition{}
	result := repo.database.Where("id = ?", conditionID).Limit(1).Find(&condition)
	if result.Error != nil {
		return models.Condition{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Condition{}, false, nil
	}
	return condition, true, nil
}

func (repo *ConditionRepository) Create(condition *models.Condition) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		return createCondition(tx, condition)
	})
}

func (repo *ConditionRepository) Save(condition *models.Condition) error {
	return repo.database.Model(&models.Condition{}).
		Where("id = ?", condition.ID).
		Updates(map[string]any{
			"label":       condition.Label,
			"location":    condition.Location,
			"region":      condition.Region,
			"is_archived": condition.IsArchived,
		}).Error
}

func createCondition(tx *gorm.DB, condition *models.Condition) error {
	seq, err := nextSeq(tx, "conditions")
	if err != nil {
		return err
	}
	condition.Seq = seq
	return tx.Create(condition).Error
}
