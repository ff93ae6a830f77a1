package httperr

import "errors"

// Business rule violation codes returned by the booking core.
const (
	CodeNotFound         = "not_found"
	CodeSlotFull         = "slot_full"
	CodeDuplicateBooking = "duplicate_booking"
	CodeWindowExpired    = "window_expired"
	CodeAlreadyCancelled = "already_cancelled"
	CodeAlreadyPaid      = "already_paid"
	CodeForbidden        = "forbidden"
	CodeTargetFull       = "target_full"
	CodeInvalidState     = "invalid_state"
	CodeUnavailable      = "unavailable"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
