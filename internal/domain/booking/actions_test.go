package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
)

func TestCancel(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	start := now.Add(48 * time.Hour)

	t.Run("cancels inside the window", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusUnpaid)}

		require.NoError(t, Cancel(ap, start, now, "cannot make it"))

		assert.Equal(t, string(StatusCancelled), ap.Status)
		assert.Equal(t, "cannot make it", ap.Reason)
		require.NotNil(t, ap.CancelledAt)
		assert.Equal(t, now, *ap.CancelledAt)
	})

	t.Run("window expired", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPaid)}

		err := Cancel(ap, now.Add(23*time.Hour), now, "too late")
		assert.True(t, httperr.IsBusiness(err, httperr.CodeWindowExpired))
		assert.Equal(t, string(StatusPaid), ap.Status)
	})

	t.Run("already cancelled", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusCancelled)}

		err := Cancel(ap, start, now, "again")
		assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyCancelled))
	})

	t.Run("completed is untouchable", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusCompleted)}

		err := Cancel(ap, start, now, "no")
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
	})
}

func TestCancelForReschedule(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusUnpaid)}
	require.NoError(t, CancelForReschedule(ap, now))

	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, ReasonRescheduled, ap.Reason)
	require.NotNil(t, ap.CancelledAt)
}

func TestMarkPaid(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusUnpaid)}
	require.NoError(t, MarkPaid(ap))
	assert.Equal(t, string(StatusPaid), ap.Status)

	err := MarkPaid(ap)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}

func TestComplete(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusPaid)}
	require.NoError(t, Complete(ap, now))

	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)

	err := Complete(ap, now)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}

func TestConfirmPayment(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		p := &models.Payment{Status: string(PaymentPending)}

		require.NoError(t, ConfirmPayment(p, "txn-123", true))
		assert.Equal(t, string(PaymentPaid), p.Status)
		assert.Equal(t, "txn-123", p.TransactionID)
	})

	t.Run("failure", func(t *testing.T) {
		p := &models.Payment{Status: string(PaymentPending)}

		require.NoError(t, ConfirmPayment(p, "txn-124", false))
		assert.Equal(t, string(PaymentFailed), p.Status)
	})

	t.Run("second confirmation is rejected", func(t *testing.T) {
		p := &models.Payment{Status: string(PaymentPaid), TransactionID: "txn-123"}

		err := ConfirmPayment(p, "txn-999", true)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyPaid))
		assert.Equal(t, "txn-123", p.TransactionID, "must not overwrite the original transaction")
	})

	t.Run("failed payment stays failed", func(t *testing.T) {
		p := &models.Payment{Status: string(PaymentFailed)}

		err := ConfirmPayment(p, "txn-125", true)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
	})
}
