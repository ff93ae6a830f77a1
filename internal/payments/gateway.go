package payments

import (
	"github.com/razorpay/razorpay-go"

	"github.com/clinicbooking/clinic-scheduler/internal/config"
)

// Gateway creates the provider-side payment intent for a pending payment.
// Webhook signature verification lives in the provider integration, not here.
type Gateway interface {
	CreateOrder(amount float64, receiptID string) (orderID string, err error)
}

type RazorpayGateway struct {
	client   *razorpay.Client
	currency string
}

func NewRazorpayGateway(cfg *config.Config) *RazorpayGateway {
	return &RazorpayGateway{
		client:   razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		currency: "VND",
	}
}

func (g *RazorpayGateway) CreateOrder(amount float64, receiptID string) (string, error) {
	// gateway expects the amount in minor units
	data := map[string]interface{}{
		"amount":   int64(amount * 100),
		"currency": g.currency,
		"receipt":  receiptID,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", err
	}

	orderID, _ := body["id"].(string)
	return orderID, nil
}

var _ Gateway = (*RazorpayGateway)(nil)
