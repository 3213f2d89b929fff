package db

import "gorm.io/gorm"

type Repositories struct {
	Conditions *ConditionRepository
	Logs       *SymptomLogRepository
	Store      *StoreRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Conditions: NewConditionRepository(database),
		Logs:       NewSymptomLogRepository(database),
		Store:      NewStoreRepository(database),
	}
}

// nextSeq returns the insertion sequence for the next row of table. It must
// run inside the transaction that inserts the row.
func nextSeq(tx *gorm.DB, table string) (int64, error) {
	var current int64
	if err := tx.Table(table).Select("COALESCE(MAX(seq), 0)").Scan(&current).Error; err != nil {
		return 0, err
	}
	return current + 1, nil
}
