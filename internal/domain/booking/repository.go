package booking

import (
	"context"

	"github.com/clinicbooking/clinic-scheduler/internal/models"
)

type Repository interface {
	// Transact runs fn against a repository bound to one database
	// transaction. All ledger mutations and the correlated appointment
	// writes happen inside a single Transact call.
	Transact(ctx context.Context, fn func(r Repository) error) error

	// -------- Schedule ledger --------

	GetSchedule(
		ctx context.Context,
		id uint,
	) (*models.Schedule, error)

	// ReserveSeat locks the schedule row, increments booked_count and
	// recomputes the availability flag. The returned row is the caller's
	// slot token for the rest of the transaction.
	ReserveSeat(
		ctx context.Context,
		scheduleID uint,
	) (*models.Schedule, error)

	// ReleaseSeat decrements booked_count under the same row lock,
	// clamped at zero.
	ReleaseSeat(
		ctx context.Context,
		scheduleID uint,
	) (*models.Schedule, error)

	// -------- Health record --------

	GetHealthRecord(
		ctx context.Context,
		id uint,
	) (*models.HealthRecord, error)

	// -------- Appointment --------

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// GetAppointmentForUpdate locks the appointment row for the rest of
	// the transaction. Lock order is always appointment first, then
	// schedule rows in ascending ID order.
	GetAppointmentForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	HasActiveAppointment(
		ctx context.Context,
		healthRecordID uint,
		scheduleID uint,
	) (bool, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Doctor --------

	GetDoctorProfileByUserID(
		ctx context.Context,
		userID uint,
	) (*models.DoctorProfile, error)

	// -------- Payment --------

	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	GetPaymentForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Payment, error)

	GetPaymentByAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Payment, error)

	UpdatePayment(
		ctx context.Context,
		p *models.Payment,
	) error
}
