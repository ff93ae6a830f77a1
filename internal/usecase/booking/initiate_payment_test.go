package booking

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/clinicbooking/clinic-scheduler/internal/domain/booking"
	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
)

type stubGateway struct {
	calls int
	fail  bool
}

func (g *stubGateway) CreateOrder(amount float64, receiptID string) (string, error) {
	g.calls++
	if g.fail {
		return "", fmt.Errorf("gateway unreachable")
	}
	return fmt.Sprintf("order_%s", receiptID), nil
}

func TestInitiatePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the gateway order once", func(t *testing.T) {
		repo := seedBooked(string(domain.StatusUnpaid))
		gw := &stubGateway{}
		uc := NewInitiatePayment(repo, gw)

		pay, err := uc.Execute(ctx, patient(1), 1)
		require.NoError(t, err)
		assert.Equal(t, "order_rcpt-1", pay.GatewayOrder)
		assert.Equal(t, 1, gw.calls)

		// repeat serves the stored order without a second gateway call
		pay, err = uc.Execute(ctx, patient(1), 1)
		require.NoError(t, err)
		assert.Equal(t, "order_rcpt-1", pay.GatewayOrder)
		assert.Equal(t, 1, gw.calls)
	})

	t.Run("paid payment is rejected", func(t *testing.T) {
		repo := seedBooked(string(domain.StatusPaid))
		p := repo.s.payments[1]
		p.Status = string(domain.PaymentPaid)
		repo.s.payments[1] = p

		uc := NewInitiatePayment(repo, &stubGateway{})
		_, err := uc.Execute(ctx, patient(1), 1)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyPaid))
	})

	t.Run("failed payment is a dead end", func(t *testing.T) {
		repo := seedBooked(string(domain.StatusUnpaid))
		p := repo.s.payments[1]
		p.Status = string(domain.PaymentFailed)
		repo.s.payments[1] = p

		uc := NewInitiatePayment(repo, &stubGateway{})
		_, err := uc.Execute(ctx, patient(1), 1)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
	})

	t.Run("gateway failure leaves the payment clean", func(t *testing.T) {
		repo := seedBooked(string(domain.StatusUnpaid))
		uc := NewInitiatePayment(repo, &stubGateway{fail: true})

		_, err := uc.Execute(ctx, patient(1), 1)
		require.Error(t, err)

		pay, _ := repo.GetPaymentByAppointment(ctx, 1)
		assert.Empty(t, pay.GatewayOrder)
	})

	t.Run("only the record owner or an admin", func(t *testing.T) {
		repo := seedBooked(string(domain.StatusUnpaid))
		uc := NewInitiatePayment(repo, &stubGateway{})

		_, err := uc.Execute(ctx, patient(55), 1)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
	})
}
