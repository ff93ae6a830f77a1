package booking

import (
	"time"

	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ReasonRescheduled is the system reason stored on an appointment superseded
// by a reschedule.
const ReasonRescheduled = "rescheduled by patient"

// Cancel moves a non-terminal appointment to cancelled. scheduleStart is the
// slot start in the clinic timezone; the 24h window is evaluated lazily here,
// there is no background timer.
func Cancel(ap *models.Appointment, scheduleStart, now time.Time, reason string) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	if !WithinCancelWindow(scheduleStart, now) {
		return httperr.ErrBusiness(httperr.CodeWindowExpired)
	}

	ap.Status = string(StatusCancelled)
	ap.Reason = reason
	ap.CancelledAt = &now
	return nil
}

// CancelForReschedule is Cancel with the system reason. The window was already
// checked by the caller against the same clock reading.
func CancelForReschedule(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.Reason = ReasonRescheduled
	ap.CancelledAt = &now
	return nil
}

func MarkPaid(ap *models.Appointment) error {
	if err := CanMarkPaid(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusPaid)
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// ConfirmPayment applies the gateway outcome to the payment row. Idempotency:
// a second confirmation of a paid payment is rejected with already_paid and
// must have no side effects.
func ConfirmPayment(p *models.Payment, transactionID string, success bool) error {
	switch PaymentStatus(p.Status) {
	case PaymentPaid:
		return httperr.ErrBusiness(httperr.CodeAlreadyPaid)
	case PaymentFailed:
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	if success {
		p.Status = string(PaymentPaid)
	} else {
		p.Status = string(PaymentFailed)
	}
	p.TransactionID = transactionID
	return nil
}
