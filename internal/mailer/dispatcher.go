package mailer

import "log"

// Outbound is anything the dispatcher can deliver through the Sender.
type Outbound interface {
	sendVia(s *Sender) error
}

func (m BookingConfirmation) sendVia(s *Sender) error { return s.SendBookingConfirmation(m) }
func (m OTPMail) sendVia(s *Sender) error             { return s.SendOTP(m) }
func (m PaymentReceipt) sendVia(s *Sender) error      { return s.SendPaymentReceipt(m) }
func (m DoctorApproval) sendVia(s *Sender) error      { return s.SendDoctorApproval(m) }

// Dispatcher delivers email off the request path. Delivery happens after the
// booking transaction committed; failures are logged, retry is the mail
// provider's concern.
type Dispatcher struct {
	sender *Sender
	queue  chan Outbound
}

func NewDispatcher(sender *Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Outbound, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for m := range d.queue {
		if err := m.sendVia(d.sender); err != nil {
			log.Println("mail error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(m Outbound) {
	select {
	case d.queue <- m:
	default:
		log.Println("mail queue full, dropping message")
	}
}

func (d *Dispatcher) BookingConfirmed(m BookingConfirmation) { d.Dispatch(m) }
func (d *Dispatcher) PaymentReceived(m PaymentReceipt)       { d.Dispatch(m) }
func (d *Dispatcher) OTPRequested(m OTPMail)                 { d.Dispatch(m) }
func (d *Dispatcher) DoctorApproved(m DoctorApproval)        { d.Dispatch(m) }
