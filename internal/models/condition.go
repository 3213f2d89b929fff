package models

import "time"

type Condition struct {
	ID         string     `gorm:"primaryKey" json:"id"`
	Label      string     `gorm:"not null" json:"label"`
	Location   string     `gorm:"not null;default:''" json:"body_part"`
	Region     BodyRegion `gorm:"not null;default:general" json:"region"`
	OnsetDate  time.Time  `gorm:"type:date;not null" json:"onset_date"`
	IsArchived bool       `gorm:"not null;default:false" json:"is_archived"`
	Seq        int64      `gorm:"not null;index" json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ConditionPatch carries the fields an edit may change. Nil fields are left as is.
type ConditionPatch struct {
	Label    *string
	Location *string
	Region   *BodyRegion
}
