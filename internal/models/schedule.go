package models

import "time"

// Schedule is one bookable slot for one doctor. BookedCount is the maintained
// seat ledger; it is mutated only inside booking transactions, never recounted
// out of band.
type Schedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorID uint `gorm:"not null;uniqueIndex:uniq_doctor_slot" json:"doctor_id"`
	Doctor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uniq_doctor_slot" json:"date"`
	StartTime string    `gorm:"size:5;not null;uniqueIndex:uniq_doctor_slot" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	Capacity    int `gorm:"default:1" json:"capacity"`
	BookedCount int `gorm:"default:0" json:"booked_count"`

	// Active mirrors booked_count < capacity and is recomputed on every
	// ledger mutation.
	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StartAt combines date and start time in the clinic timezone. A malformed
// StartTime yields the zero time, which closes the cancel window instead of
// widening it.
func (s *Schedule) StartAt(loc *time.Location) time.Time {
	t, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return time.Time{}
	}
	return time.Date(
		s.Date.Year(), s.Date.Month(), s.Date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		loc,
	)
}

func (s *Schedule) HasFreeSeat() bool {
	return s.Active && s.BookedCount < s.Capacity
}
