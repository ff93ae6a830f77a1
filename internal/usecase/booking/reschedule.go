package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicbooking/clinic-scheduler/internal/audit"
	domain "github.com/clinicbooking/clinic-scheduler/internal/domain/booking"
	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/identity"
	"github.com/clinicbooking/clinic-scheduler/internal/mailer"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
	"github.com/clinicbooking/clinic-scheduler/internal/timezone"
)

type Reschedule struct {
	repo     domain.Repository
	notifier Notifier
	audit    *audit.Dispatcher
	tz       string
	now      func() time.Time
}

func NewReschedule(
	repo domain.Repository,
	notifier Notifier,
	auditD *audit.Dispatcher,
	tz string,
) *Reschedule {
	return &Reschedule{
		repo:     repo,
		notifier: notifier,
		audit:    auditD,
		tz:       tz,
		now:      func() time.Time { return timezone.NowIn(tz) },
	}
}

// Execute moves an appointment to another schedule: the old one is cancelled
// with a system reason and a sibling appointment is created on the target.
// Both ledger mutations and both appointment writes are one atomic unit.
func (uc *Reschedule) Execute(
	ctx context.Context,
	p identity.Principal,
	appointmentID uint,
	targetScheduleID uint,
) (*models.Appointment, error) {

	var created *models.Appointment
	var confirmation mailer.BookingConfirmation

	err := uc.repo.Transact(ctx, func(tx domain.Repository) error {

		ap, err := tx.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return err
		}

		if err := authorizePatientAction(p, ap); err != nil {
			return err
		}

		if targetScheduleID == ap.ScheduleID {
			return httperr.ErrBusiness(httperr.CodeDuplicateBooking)
		}

		if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
			return err
		}

		loc := timezone.Location(uc.tz)
		now := uc.now()
		if !domain.WithinCancelWindow(ap.Schedule.StartAt(loc), now) {
			return httperr.ErrBusiness(httperr.CodeWindowExpired)
		}

		dup, err := tx.HasActiveAppointment(ctx, ap.HealthRecordID, targetScheduleID)
		if err != nil {
			return err
		}
		if dup {
			return httperr.ErrBusiness(httperr.CodeDuplicateBooking)
		}

		// both schedule rows get locked; ascending ID order avoids
		// deadlocks between concurrent reschedules
		var target *models.Schedule
		if ap.ScheduleID < targetScheduleID {
			if _, err := tx.ReleaseSeat(ctx, ap.ScheduleID); err != nil {
				return err
			}
			if target, err = uc.reserveTarget(ctx, tx, targetScheduleID); err != nil {
				return err
			}
		} else {
			if target, err = uc.reserveTarget(ctx, tx, targetScheduleID); err != nil {
				return err
			}
			if _, err := tx.ReleaseSeat(ctx, ap.ScheduleID); err != nil {
				return err
			}
		}

		if err := domain.CancelForReschedule(ap, now); err != nil {
			return err
		}
		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		next := &models.Appointment{
			HealthRecordID:    ap.HealthRecordID,
			ScheduleID:        target.ID,
			DiseaseType:       ap.DiseaseType,
			Symptoms:          ap.Symptoms,
			Status:            string(domain.InitialStatus()),
			RescheduledFromID: &ap.ID,
		}

		if err := tx.CreateAppointment(ctx, next); err != nil {
			return err
		}

		doctor, err := tx.GetDoctorProfileByUserID(ctx, target.DoctorID)
		if err != nil {
			return err
		}

		// the sibling appointment gets its own pending payment; settling
		// an already-paid predecessor is a refund concern, out of scope
		prev, err := tx.GetPaymentByAppointment(ctx, ap.ID)
		if err != nil {
			return err
		}

		payment := &models.Payment{
			AppointmentID: next.ID,
			Method:        prev.Method,
			Amount:        doctor.ConsultationFee,
			Status:        string(domain.PaymentPending),
			ReceiptID:     uuid.NewString(),
		}

		if err := tx.CreatePayment(ctx, payment); err != nil {
			return err
		}

		created = next
		confirmation = mailer.BookingConfirmation{
			AppointmentID:  next.ID,
			HealthRecordID: ap.HealthRecordID,
			PatientName:    ap.HealthRecord.FullName,
			PatientEmail:   ap.HealthRecord.Email,
			Date:           target.Date.Format("2006-01-02"),
			StartTime:      target.StartTime,
			EndTime:        target.EndTime,
			DoctorName:     doctor.User.Name,
			Fee:            doctor.ConsultationFee,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.notifier.BookingConfirmed(confirmation)

	uc.audit.Dispatch(audit.Event{
		UserID:   &p.UserID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &created.ID,
		Metadata: map[string]any{"from": appointmentID},
	})

	return created, nil
}

func (uc *Reschedule) reserveTarget(
	ctx context.Context,
	tx domain.Repository,
	scheduleID uint,
) (*models.Schedule, error) {

	target, err := tx.ReserveSeat(ctx, scheduleID)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotFull) {
			return nil, httperr.ErrBusiness(httperr.CodeTargetFull)
		}
		return nil, err
	}
	return target, nil
}
