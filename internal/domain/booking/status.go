package booking

import "github.com/clinicbooking/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusUnpaid    Status = "unpaid"
	StatusPaid      Status = "paid"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func InitialStatus() Status {
	return StatusUnpaid
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrBusiness(httperr.CodeAlreadyCancelled)
	}
	if current == StatusCompleted {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanMarkPaid guards the unpaid -> paid transition driven by the payment
// gateway confirmation.
func CanMarkPaid(current Status) error {
	if current != StatusUnpaid {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanComplete guards the paid -> completed transition. Completion is an
// explicit doctor action, never inferred from the payment.
func CanComplete(current Status) error {
	if current != StatusPaid {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// ===============================
// Payment Status
// ===============================

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// ===============================
// Payment Methods / Disease types
// ===============================

type PaymentMethod string

const (
	MethodMomo  PaymentMethod = "momo"
	MethodVNPay PaymentMethod = "vnpay"
)

func ValidPaymentMethod(m string) bool {
	switch PaymentMethod(m) {
	case MethodMomo, MethodVNPay:
		return true
	}
	return false
}

var diseaseTypes = map[string]bool{
	"respiratory":  true,
	"digestive":    true,
	"neuro_psych":  true,
	"eye":          true,
	"trauma_ortho": true,
	"dermatology":  true,
	"ent":          true,
	"other":        true,
}

func ValidDiseaseType(d string) bool {
	return diseaseTypes[d]
}
