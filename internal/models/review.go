package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint `gorm:"not null;index" json:"patient_id"`
	Patient   User `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	DoctorID uint `gorm:"not null;index" json:"doctor_id"`
	Doctor   User `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`
	Reply   string `gorm:"type:text" json:"reply"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
