package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/clinicbooking/clinic-scheduler/internal/domain/booking"
	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
)

const maxTxRetries = 3

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Transaction boundary
// --------------------------------------------------

// Transact retries serialization/deadlock failures a bounded number of times
// before surfacing them as unavailable. Business errors are never retried.
func (r *BookingGormRepository) Transact(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {

	var err error
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&BookingGormRepository{db: tx})
		})

		if err == nil || !isSerializationFailure(err) {
			return err
		}
	}

	return httperr.ErrBusiness(httperr.CodeUnavailable)
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// serialization_failure / deadlock_detected
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return err
}

// --------------------------------------------------
// Schedule ledger
// --------------------------------------------------

func (r *BookingGormRepository) GetSchedule(
	ctx context.Context,
	id uint,
) (*models.Schedule, error) {

	var s models.Schedule
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &s, nil
}

func (r *BookingGormRepository) ReserveSeat(
	ctx context.Context,
	scheduleID uint,
) (*models.Schedule, error) {

	var s models.Schedule
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, scheduleID).Error; err != nil {
		return nil, notFoundOr(err)
	}

	if s.BookedCount >= s.Capacity {
		return nil, httperr.ErrBusiness(httperr.CodeSlotFull)
	}

	s.BookedCount++
	s.Active = s.BookedCount < s.Capacity

	if err := r.db.WithContext(ctx).
		Model(&s).
		Select("booked_count", "active").
		Updates(map[string]any{
			"booked_count": s.BookedCount,
			"active":       s.Active,
		}).Error; err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *BookingGormRepository) ReleaseSeat(
	ctx context.Context,
	scheduleID uint,
) (*models.Schedule, error) {

	var s models.Schedule
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, scheduleID).Error; err != nil {
		return nil, notFoundOr(err)
	}

	// Clamped at zero: a racing release must never drive the count negative.
	if s.BookedCount > 0 {
		s.BookedCount--
	}
	s.Active = s.BookedCount < s.Capacity

	if err := r.db.WithContext(ctx).
		Model(&s).
		Select("booked_count", "active").
		Updates(map[string]any{
			"booked_count": s.BookedCount,
			"active":       s.Active,
		}).Error; err != nil {
		return nil, err
	}

	return &s, nil
}

// --------------------------------------------------
// Health record
// --------------------------------------------------

func (r *BookingGormRepository) GetHealthRecord(
	ctx context.Context,
	id uint,
) (*models.HealthRecord, error) {

	var hr models.HealthRecord
	if err := r.db.WithContext(ctx).First(&hr, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &hr, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Schedule").
		Preload("HealthRecord").
		First(&ap, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &ap, nil
}

func (r *BookingGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, id).Error; err != nil {
		return nil, notFoundOr(err)
	}

	// associations loaded outside the locking query
	if err := r.db.WithContext(ctx).First(&ap.Schedule, ap.ScheduleID).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).First(&ap.HealthRecord, ap.HealthRecordID).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *BookingGormRepository) HasActiveAppointment(
	ctx context.Context,
	healthRecordID uint,
	scheduleID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"health_record_id = ? AND schedule_id = ? AND status <> ?",
			healthRecordID, scheduleID, string(domain.StatusCancelled),
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Doctor
// --------------------------------------------------

func (r *BookingGormRepository) GetDoctorProfileByUserID(
	ctx context.Context,
	userID uint,
) (*models.DoctorProfile, error) {

	var dp models.DoctorProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&dp).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &dp, nil
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *BookingGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *BookingGormRepository) GetPaymentForUpdate(
	ctx context.Context,
	id uint,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &p, nil
}

func (r *BookingGormRepository) GetPaymentByAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&p).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &p, nil
}

func (r *BookingGormRepository) UpdatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
