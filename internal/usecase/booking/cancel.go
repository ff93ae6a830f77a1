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

type Cancel struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
	now   func() time.Time
}

func NewCancel(
	repo domain.Repository,
	auditD *audit.Dispatcher,
	tz string,
) *Cancel {
	return &Cancel{
		repo:  repo,
		audit: auditD,
		tz:    tz,
		now:   func() time.Time { return timezone.NowIn(tz) },
	}
}

func (uc *Cancel) Execute(
	ctx context.Context,
	p identity.Principal,
	appointmentID uint,
	reason string,
) (*models.Appointment, error) {

	var cancelled *models.Appointment

	err := uc.repo.Transact(ctx, func(tx domain.Repository) error {

		ap, err := tx.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return err
		}

		if err := authorizePatientAction(p, ap); err != nil {
			return err
		}

		loc := timezone.Location(uc.tz)
		start := ap.Schedule.StartAt(loc)

		if err := domain.Cancel(ap, start, uc.now(), reason); err != nil {
			return err
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		if _, err := tx.ReleaseSeat(ctx, ap.ScheduleID); err != nil {
			return err
		}

		cancelled = ap
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &p.UserID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &cancelled.ID,
	})

	return cancelled, nil
}

// authorizePatientAction allows the owner of the health record or an admin.
func authorizePatientAction(p identity.Principal, ap *models.Appointment) error {
	switch p.Role {
	case identity.RoleAdmin:
		return nil
	case identity.RolePatient:
		if ap.HealthRecord.UserID == p.UserID {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeForbidden)
}
