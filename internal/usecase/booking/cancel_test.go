package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/clinicbooking/clinic-scheduler/internal/domain/booking"
	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/identity"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
	"github.com/clinicbooking/clinic-scheduler/internal/timezone"
)

// seedBooked extends seedClinic with one appointment (id 1) holding the only
// booked seat of schedule 5.
func seedBooked(status string) *memRepo {
	repo := seedClinic(2)

	sched := repo.s.schedules[5]
	sched.BookedCount = 1
	repo.s.schedules[5] = sched

	repo.s.appointments[1] = models.Appointment{
		ID:             1,
		HealthRecordID: 1,
		ScheduleID:     5,
		DiseaseType:    "respiratory",
		Status:         status,
	}
	repo.s.nextAppointmentID = 1

	repo.s.payments[1] = models.Payment{
		ID:            1,
		AppointmentID: 1,
		Method:        "momo",
		Amount:        150000,
		Status:        string(domain.PaymentPending),
		ReceiptID:     "rcpt-1",
	}
	repo.s.nextPaymentID = 1

	return repo
}

// slotStart is schedule 5's start in the clinic timezone.
func slotStart() time.Time {
	loc := timezone.Location(testTZ)
	return time.Date(2026, 4, 1, 9, 0, 0, 0, loc)
}

func newCancelAt(repo *memRepo, now time.Time) *Cancel {
	uc := NewCancel(repo, nil, testTZ)
	uc.now = func() time.Time { return now }
	return uc
}

func TestCancel_Usecase(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels and releases the seat", func(t *testing.T) {
		repo := seedBooked(string(domain.StatusUnpaid))
		uc := newCancelAt(repo, slotStart().Add(-48*time.Hour))

		ap, err := uc.Execute(ctx, patient(1), 1, "cannot make it")
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusCancelled), ap.Status)
		assert.Equal(t, "cannot make it", ap.Reason)
		require.NotNil(t, ap.CancelledAt)

		sched, _ := repo.GetSchedule(ctx, 5)
		assert.Equal(t, 0, sched.BookedCount)
		assert.True(t, sched.Active)
	})

	t.Run("exactly 24h before start still cancels", func(t *testing.T) {
		repo := seedBooked(string(domain.StatusPaid))
		uc := newCancelAt(repo, slotStart().Add(-24*time.Hour))

		_, err := uc.Execute(ctx, patient(1), 1, "on the boundary")
		require.NoError(t, err)
	})

	t.Run("inside 24h the window is closed", func(t *testing.T) {
		repo := seedBooked(string(domain.StatusUnpaid))
		uc := newCancelAt(repo, slotStart().Add(-23*time.Hour))

		_, err := uc.Execute(ctx, patient(1), 1, "too late")
		assert.True(t, httperr.IsBusiness(err, httperr.CodeWindowExpired))

		// nothing changed
		ap, _ := repo.GetAppointment(ctx, 1)
		assert.Equal(t, string(domain.StatusUnpaid), ap.Status)
		sched, _ := repo.GetSchedule(ctx, 5)
		assert.Equal(t, 1, sched.BookedCount)
	})

	t.Run("already cancelled", func(t *testing.T) {
		repo := seedBooked(string(domain.StatusCancelled))
		uc := newCancelAt(repo, slotStart().Add(-48*time.Hour))

		_, err := uc.Execute(ctx, patient(1), 1, "again")
		assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyCancelled))
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		repo := seedBooked(string(domain.StatusCompleted))
		uc := newCancelAt(repo, slotStart().Add(-48*time.Hour))

		_, err := uc.Execute(ctx, patient(1), 1, "no")
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
	})

	t.Run("only the record owner or an admin", func(t *testing.T) {
		repo := seedBooked(string(domain.StatusUnpaid))
		uc := newCancelAt(repo, slotStart().Add(-48*time.Hour))

		_, err := uc.Execute(ctx, patient(77), 1, "not mine")
		assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

		doctor := identity.Principal{UserID: 10, Role: identity.RoleDoctor}
		_, err = uc.Execute(ctx, doctor, 1, "doctor cannot")
		assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

		admin := identity.Principal{UserID: 500, Role: identity.RoleAdmin}
		_, err = uc.Execute(ctx, admin, 1, "admin override")
		require.NoError(t, err)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		repo := seedBooked(string(domain.StatusUnpaid))
		uc := newCancelAt(repo, slotStart().Add(-48*time.Hour))

		_, err := uc.Execute(ctx, patient(1), 999, "missing")
		assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
	})
}
