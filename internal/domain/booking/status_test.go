package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
)

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusUnpaid.Terminal())
	assert.False(t, StatusPaid.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestCanCancel(t *testing.T) {
	assert.NoError(t, CanCancel(StatusUnpaid))
	assert.NoError(t, CanCancel(StatusPaid))

	err := CanCancel(StatusCancelled)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyCancelled))

	err = CanCancel(StatusCompleted)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}

func TestCanMarkPaid(t *testing.T) {
	assert.NoError(t, CanMarkPaid(StatusUnpaid))

	for _, s := range []Status{StatusPaid, StatusCompleted, StatusCancelled} {
		err := CanMarkPaid(s)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState), "status %s", s)
	}
}

func TestCanComplete(t *testing.T) {
	assert.NoError(t, CanComplete(StatusPaid))

	for _, s := range []Status{StatusUnpaid, StatusCompleted, StatusCancelled} {
		err := CanComplete(s)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState), "status %s", s)
	}
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod("momo"))
	assert.True(t, ValidPaymentMethod("vnpay"))
	assert.False(t, ValidPaymentMethod("cash"))
	assert.False(t, ValidPaymentMethod(""))
}

func TestValidDiseaseType(t *testing.T) {
	assert.True(t, ValidDiseaseType("respiratory"))
	assert.True(t, ValidDiseaseType("other"))
	assert.False(t, ValidDiseaseType("unknown"))
	assert.False(t, ValidDiseaseType(""))
}
