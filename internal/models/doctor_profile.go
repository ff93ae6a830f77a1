package models

import "time"

// DoctorProfile complements a User with role=doctor. Composition instead of a
// user subtype, so auth stays on a single users table.
type DoctorProfile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	LicenseNumber string `gorm:"size:20;uniqueIndex;not null" json:"license_number"`
	Biography     string `gorm:"size:255" json:"biography"`

	HospitalID uint     `json:"hospital_id"`
	Hospital   Hospital `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"hospital"`

	SpecializationID uint           `json:"specialization_id"`
	Specialization   Specialization `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"specialization"`

	ConsultationFee float64 `gorm:"default:100000" json:"consultation_fee"`
	Verified        bool    `gorm:"default:false" json:"verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
