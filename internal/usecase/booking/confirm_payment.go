package booking

import (
	"context"

	"github.com/clinicbooking/clinic-scheduler/internal/audit"
	domain "github.com/clinicbooking/clinic-scheduler/internal/domain/booking"
	"github.com/clinicbooking/clinic-scheduler/internal/mailer"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
)

// ConfirmPayment is the webhook-facing entry point. The caller has already
// verified the provider signature; here the outcome is applied exactly once.
type ConfirmPayment struct {
	repo     domain.Repository
	notifier Notifier
	audit    *audit.Dispatcher
}

func NewConfirmPayment(
	repo domain.Repository,
	notifier Notifier,
	auditD *audit.Dispatcher,
) *ConfirmPayment {
	return &ConfirmPayment{
		repo:     repo,
		notifier: notifier,
		audit:    auditD,
	}
}

func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	paymentID uint,
	providerTransactionID string,
	success bool,
) (*models.Payment, error) {

	var confirmed *models.Payment
	var receipt mailer.PaymentReceipt

	err := uc.repo.Transact(ctx, func(tx domain.Repository) error {

		pay, err := tx.GetPaymentForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}

		if err := domain.ConfirmPayment(pay, providerTransactionID, success); err != nil {
			return err
		}

		if err := tx.UpdatePayment(ctx, pay); err != nil {
			return err
		}

		if success {
			ap, err := tx.GetAppointmentForUpdate(ctx, pay.AppointmentID)
			if err != nil {
				return err
			}

			// chosen policy: a confirmed payment moves the appointment
			// to paid; completion stays a separate doctor action. A
			// cancelled appointment keeps its state, the paid amount
			// is a refund concern.
			if domain.CanMarkPaid(domain.Status(ap.Status)) == nil {
				if err := domain.MarkPaid(ap); err != nil {
					return err
				}
				if err := tx.UpdateAppointment(ctx, ap); err != nil {
					return err
				}
			}

			receipt = mailer.PaymentReceipt{
				AppointmentID: ap.ID,
				PatientName:   ap.HealthRecord.FullName,
				PatientEmail:  ap.HealthRecord.Email,
				Amount:        pay.Amount,
				Method:        pay.Method,
				TransactionID: pay.TransactionID,
			}
		}

		confirmed = pay
		return nil
	})

	if err != nil {
		return nil, err
	}

	if success {
		uc.notifier.PaymentReceived(receipt)

		uc.audit.Dispatch(audit.Event{
			Action:   "payment_confirmed",
			Entity:   "payment",
			EntityID: &confirmed.ID,
		})
	}

	return confirmed, nil
}
