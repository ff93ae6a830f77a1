package booking

import (
	"context"
	"time"

	"github.com/clinicbooking/clinic-scheduler/internal/audit"
	domain "github.com/clinicbooking/clinic-scheduler/internal/domain/booking"
	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/identity"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
	"github.com/clinicbooking/clinic-scheduler/internal/timezone"
)

// Complete marks a paid appointment as completed. Only the doctor owning the
// schedule (or an admin) may do it; it is never inferred from payments.
type Complete struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
	now   func() time.Time
}

func NewComplete(
	repo domain.Repository,
	auditD *audit.Dispatcher,
	tz string,
) *Complete {
	return &Complete{
		repo:  repo,
		audit: auditD,
		tz:    tz,
		now:   func() time.Time { return timezone.NowIn(tz) },
	}
}

func (uc *Complete) Execute(
	ctx context.Context,
	p identity.Principal,
	appointmentID uint,
) (*models.Appointment, error) {

	var completed *models.Appointment

	err := uc.repo.Transact(ctx, func(tx domain.Repository) error {

		ap, err := tx.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return err
		}

		switch p.Role {
		case identity.RoleAdmin:
		case identity.RoleDoctor:
			if ap.Schedule.DoctorID != p.UserID {
				return httperr.ErrBusiness(httperr.CodeForbidden)
			}
		default:
			return httperr.ErrBusiness(httperr.CodeForbidden)
		}

		if err := domain.Complete(ap, uc.now()); err != nil {
			return err
		}

		completed = ap
		return tx.UpdateAppointment(ctx, ap)
	})

	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &p.UserID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &completed.ID,
	})

	return completed, nil
}
