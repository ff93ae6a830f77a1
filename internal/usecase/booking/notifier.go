package booking

import "github.com/clinicbooking/clinic-scheduler/internal/mailer"

// Notifier queues outbound mail after the booking unit of work commits.
// Implemented by mailer.Dispatcher.
type Notifier interface {
	BookingConfirmed(m mailer.BookingConfirmation)
	PaymentReceived(m mailer.PaymentReceipt)
}
