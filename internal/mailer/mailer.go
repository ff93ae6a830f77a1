package mailer

import (
	"fmt"
	"io"

	"github.com/go-gomail/gomail"

	"github.com/clinicbooking/clinic-scheduler/internal/config"
)

// ===============================
// Outbound payloads
// ===============================

type BookingConfirmation struct {
	AppointmentID  uint
	HealthRecordID uint
	PatientName    string
	PatientEmail   string
	Date           string
	StartTime      string
	EndTime        string
	DoctorName     string
	Fee            float64
}

type OTPMail struct {
	Name  string
	Email string
	Code  string
}

type DoctorApproval struct {
	Name  string
	Email string
}

type PaymentReceipt struct {
	AppointmentID uint
	PatientName   string
	PatientEmail  string
	Amount        float64
	Method        string
	TransactionID string
}

// ===============================
// Sender
// ===============================

type Sender struct {
	cfg *config.Config
}

func NewSender(cfg *config.Config) *Sender {
	return &Sender{cfg: cfg}
}

func (s *Sender) dialer() *gomail.Dialer {
	return gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPEmail, s.cfg.SMTPPassword)
}

func (s *Sender) SendBookingConfirmation(m BookingConfirmation) error {
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your appointment has been booked successfully (ref #%d).\n\n"+
			"Date: %s\n"+
			"Time: %s - %s\n"+
			"Doctor: %s\n"+
			"Consultation fee: %.0f VND\n\n"+
			"Please complete the payment within 30 minutes of booking.\n"+
			"If you already paid, please ignore this email.\n\n"+
			"Clinic Booking",
		m.PatientName, m.AppointmentID,
		m.Date, m.StartTime, m.EndTime,
		m.DoctorName, m.Fee,
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.SMTPEmail)
	msg.SetHeader("To", m.PatientEmail)
	msg.SetHeader("Subject", "Appointment booked - Clinic Booking")
	msg.SetBody("text/plain", body)

	return s.dialer().DialAndSend(msg)
}

func (s *Sender) SendOTP(m OTPMail) error {
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your password reset code is: %s\n\n"+
			"The code is valid for 10 minutes. Never share it with anyone,\n"+
			"including support staff. If you did not request a reset, ignore\n"+
			"this email.\n\n"+
			"Clinic Booking",
		m.Name, m.Code,
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.SMTPEmail)
	msg.SetHeader("To", m.Email)
	msg.SetHeader("Subject", "Clinic Booking: password reset code")
	msg.SetBody("text/plain", body)

	return s.dialer().DialAndSend(msg)
}

func (s *Sender) SendDoctorApproval(m DoctorApproval) error {
	body := fmt.Sprintf(
		"Hello Dr. %s,\n\n"+
			"Your profile has been reviewed and approved. You can now open\n"+
			"schedules and receive bookings.\n\n"+
			"Clinic Booking",
		m.Name,
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.SMTPEmail)
	msg.SetHeader("To", m.Email)
	msg.SetHeader("Subject", "Your doctor profile is approved - Clinic Booking")
	msg.SetBody("text/plain", body)

	return s.dialer().DialAndSend(msg)
}

func (s *Sender) SendPaymentReceipt(m PaymentReceipt) error {
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"We received your payment of %.0f VND (%s) for appointment #%d.\n"+
			"Your receipt is attached.\n\n"+
			"Clinic Booking",
		m.PatientName, m.Amount, m.Method, m.AppointmentID,
	)

	pdf, err := receiptPDF(m)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.SMTPEmail)
	msg.SetHeader("To", m.PatientEmail)
	msg.SetHeader("Subject", "Payment confirmation - Clinic Booking")
	msg.SetBody("text/plain", body)
	msg.Attach("receipt.pdf", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))

	return s.dialer().DialAndSend(msg)
}
