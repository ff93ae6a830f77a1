package models

import "time"

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"uniqueIndex;not null" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Method string  `gorm:"size:20;not null" json:"method"`
	Amount float64 `gorm:"not null" json:"amount"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	// ReceiptID is our identifier handed to the gateway; TransactionID is the
	// provider's identifier reported back on confirmation.
	ReceiptID     string `gorm:"size:36;uniqueIndex" json:"receipt_id"`
	TransactionID string `gorm:"size:100" json:"transaction_id"`
	GatewayOrder  string `gorm:"size:100" json:"gateway_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
