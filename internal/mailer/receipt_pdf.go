package mailer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

func receiptPDF(m PaymentReceipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 12, "Clinic Booking - Payment Receipt")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 12)
	line := func(label, value string) {
		pdf.CellFormat(60, 8, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	line("Patient", m.PatientName)
	line("Appointment", fmt.Sprintf("#%d", m.AppointmentID))
	line("Amount", fmt.Sprintf("%.0f VND", m.Amount))
	line("Method", m.Method)
	line("Transaction", m.TransactionID)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
