package booking

import (
	"context"

	domain "github.com/clinicbooking/clinic-scheduler/internal/domain/booking"
	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/identity"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
	"github.com/clinicbooking/clinic-scheduler/internal/payments"
)

// InitiatePayment asks the gateway for a payment order tied to the pending
// payment of an appointment. The gateway call happens outside any row lock.
type InitiatePayment struct {
	repo    domain.Repository
	gateway payments.Gateway
}

func NewInitiatePayment(
	repo domain.Repository,
	gateway payments.Gateway,
) *InitiatePayment {
	return &InitiatePayment{
		repo:    repo,
		gateway: gateway,
	}
}

func (uc *InitiatePayment) Execute(
	ctx context.Context,
	p identity.Principal,
	appointmentID uint,
) (*models.Payment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := authorizePatientAction(p, ap); err != nil {
		return nil, err
	}

	pay, err := uc.repo.GetPaymentByAppointment(ctx, ap.ID)
	if err != nil {
		return nil, err
	}

	switch domain.PaymentStatus(pay.Status) {
	case domain.PaymentPaid:
		return nil, httperr.ErrBusiness(httperr.CodeAlreadyPaid)
	case domain.PaymentFailed:
		return nil, httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	if pay.GatewayOrder != "" {
		// idempotent: the existing order keeps serving
		return pay, nil
	}

	orderID, err := uc.gateway.CreateOrder(pay.Amount, pay.ReceiptID)
	if err != nil {
		return nil, err
	}

	pay.GatewayOrder = orderID
	if err := uc.repo.UpdatePayment(ctx, pay); err != nil {
		return nil, err
	}

	return pay, nil
}
