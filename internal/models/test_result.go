package models

import "time"

type TestResult struct {
	ID uint `gorm:"primaryKey" json:"id"`

	HealthRecordID uint         `gorm:"not null;index" json:"health_record_id"`
	HealthRecord   HealthRecord `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	TestName    string `gorm:"size:255;not null" json:"test_name"`
	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
