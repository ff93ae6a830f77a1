package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicbooking/clinic-scheduler/internal/audit"
	domain "github.com/clinicbooking/clinic-scheduler/internal/domain/booking"
	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/identity"
	"github.com/clinicbooking/clinic-scheduler/internal/mailer"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	HealthRecordID uint
	ScheduleID     uint
	DiseaseType    string
	Symptoms       string
	PaymentMethod  string
}

// ======================================================
// USE CASE
// ======================================================

type Book struct {
	repo     domain.Repository
	notifier Notifier
	audit    *audit.Dispatcher
}

func NewBook(
	repo domain.Repository,
	notifier Notifier,
	auditD *audit.Dispatcher,
) *Book {
	return &Book{
		repo:     repo,
		notifier: notifier,
		audit:    auditD,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Book) Execute(
	ctx context.Context,
	p identity.Principal,
	in BookInput,
) (*models.Appointment, error) {

	if !domain.ValidDiseaseType(in.DiseaseType) {
		return nil, httperr.ErrBusiness("invalid_disease_type")
	}
	if !domain.ValidPaymentMethod(in.PaymentMethod) {
		return nil, httperr.ErrBusiness("invalid_payment_method")
	}

	hr, err := uc.repo.GetHealthRecord(ctx, in.HealthRecordID)
	if err != nil {
		return nil, err
	}

	// patients book their own records, admins book on anyone's behalf
	switch p.Role {
	case identity.RoleAdmin:
	case identity.RolePatient:
		if hr.UserID != p.UserID {
			return nil, httperr.ErrBusiness(httperr.CodeForbidden)
		}
	default:
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	var created *models.Appointment
	var confirmation mailer.BookingConfirmation

	err = uc.repo.Transact(ctx, func(tx domain.Repository) error {

		// ReserveSeat locks the schedule row first, so the duplicate
		// check below runs serialized per schedule.
		sched, err := tx.ReserveSeat(ctx, in.ScheduleID)
		if err != nil {
			return err
		}

		dup, err := tx.HasActiveAppointment(ctx, hr.ID, sched.ID)
		if err != nil {
			return err
		}
		if dup {
			return httperr.ErrBusiness(httperr.CodeDuplicateBooking)
		}

		doctor, err := tx.GetDoctorProfileByUserID(ctx, sched.DoctorID)
		if err != nil {
			return err
		}

		ap := &models.Appointment{
			HealthRecordID: hr.ID,
			ScheduleID:     sched.ID,
			DiseaseType:    in.DiseaseType,
			Symptoms:       in.Symptoms,
			Status:         string(domain.InitialStatus()),
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		payment := &models.Payment{
			AppointmentID: ap.ID,
			Method:        in.PaymentMethod,
			Amount:        doctor.ConsultationFee,
			Status:        string(domain.PaymentPending),
			ReceiptID:     uuid.NewString(),
		}

		if err := tx.CreatePayment(ctx, payment); err != nil {
			return err
		}

		created = ap
		confirmation = mailer.BookingConfirmation{
			AppointmentID:  ap.ID,
			HealthRecordID: hr.ID,
			PatientName:    hr.FullName,
			PatientEmail:   hr.Email,
			Date:           sched.Date.Format("2006-01-02"),
			StartTime:      sched.StartTime,
			EndTime:        sched.EndTime,
			DoctorName:     doctor.User.Name,
			Fee:            doctor.ConsultationFee,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// side effects only after commit, never inside the lock
	uc.notifier.BookingConfirmed(confirmation)

	uc.audit.Dispatch(audit.Event{
		UserID:   &p.UserID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &created.ID,
	})

	return created, nil
}
