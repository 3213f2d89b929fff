package models

import "time"

const (
	MinIntensity = 1
	MaxIntensity = 10
)

// SymptomLog is one timestamped intensity observation. Logs are append-only;
// Seq records insertion order and breaks timestamp ties.
type SymptomLog struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	ConditionID string    `gorm:"not null;index" json:"condition_id"`
	Timestamp   time.Time `gorm:"not null;index" json:"date"`
	Intensity   int       `gorm:"not null" json:"intensity"`
	Medication  string    `gorm:"not null;default:''" json:"medication"`
	Notes       string    `gorm:"not null;default:''" json:"notes"`
	Seq         int64     `gorm:"not null;index" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

func (entry SymptomLog) HasMedication() bool {
	return entry.Medication != ""
}
