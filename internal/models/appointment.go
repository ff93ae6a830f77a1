package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	HealthRecordID uint         `gorm:"not null;uniqueIndex:uniq_active_booking,where:status <> 'cancelled'" json:"health_record_id"`
	HealthRecord   HealthRecord `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"health_record"`

	ScheduleID uint     `gorm:"not null;uniqueIndex:uniq_active_booking,where:status <> 'cancelled'" json:"schedule_id"`
	Schedule   Schedule `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"schedule"`

	DiseaseType string `gorm:"size:20;not null" json:"disease_type"`
	Symptoms    string `gorm:"type:text" json:"symptoms"`

	Status string `gorm:"size:20;default:'unpaid'" json:"status"`

	Reason      string     `gorm:"size:150" json:"reason"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Set when this appointment was created by rescheduling another one.
	RescheduledFromID *uint `json:"rescheduled_from_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
