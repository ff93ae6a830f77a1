package models

import "time"

// HealthRecord is the patient-facing medical profile appointments are booked
// under. One user may manage several records (e.g. family members).
type HealthRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	FullName    string    `gorm:"size:100;not null" json:"full_name"`
	Gender      string    `gorm:"size:10;default:'male'" json:"gender"`
	Phone       string    `gorm:"size:20;not null" json:"phone"`
	Email       string    `gorm:"size:100;not null" json:"email"`
	InsuranceNo string    `gorm:"size:20;uniqueIndex;not null" json:"insurance_no"`
	DateOfBirth time.Time `gorm:"type:date" json:"date_of_birth"`
	Occupation  string    `gorm:"size:50" json:"occupation"`
	Address     string    `gorm:"size:255" json:"address"`

	MedicalHistory string `gorm:"type:text" json:"medical_history"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
