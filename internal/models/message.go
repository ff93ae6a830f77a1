package models

import "time"

type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SenderID uint `gorm:"not null;index" json:"sender_id"`
	Sender   User `gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ReceiverID uint `gorm:"not null;index" json:"receiver_id"`
	Receiver   User `gorm:"foreignKey:ReceiverID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Content string `gorm:"type:text" json:"content"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`

	// A doctor can attach a test result when messaging the patient.
	TestResultID *uint `json:"test_result_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
