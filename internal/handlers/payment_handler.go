package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/httpresp"
	"github.com/clinicbooking/clinic-scheduler/internal/middleware"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
	ucBooking "github.com/clinicbooking/clinic-scheduler/internal/usecase/booking"
)

type PaymentHandler struct {
	db         *gorm.DB
	initiateUC *ucBooking.InitiatePayment
	confirmUC  *ucBooking.ConfirmPayment
}

func NewPaymentHandler(
	db *gorm.DB,
	initiateUC *ucBooking.InitiatePayment,
	confirmUC *ucBooking.ConfirmPayment,
) *PaymentHandler {
	return &PaymentHandler{
		db:         db,
		initiateUC: initiateUC,
		confirmUC:  confirmUC,
	}
}

// --------- Requests ---------

type ConfirmPaymentRequest struct {
	PaymentID     uint   `json:"payment_id" binding:"required"`
	TransactionID string `json:"transaction_id" binding:"required"`
	Success       *bool  `json:"success" binding:"required"`
}

// --------- Handlers ---------

// Initiate creates the gateway order for an appointment's pending payment.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	pay, err := h.initiateUC.Execute(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"payment_id": pay.ID,
		"order_id":   pay.GatewayOrder,
		"amount":     pay.Amount,
		"method":     pay.Method,
	})
}

// Webhook is invoked by the gateway integration after it verified the
// provider signature.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payment confirmation.")
		return
	}

	pay, err := h.confirmUC.Execute(c.Request.Context(), req.PaymentID, req.TransactionID, *req.Success)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, pay)
}

// GetForAppointment returns the payment attached to one appointment.
func (h *PaymentHandler) GetForAppointment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	p := middleware.Principal(c)

	var ap models.Appointment
	if err := h.db.Preload("HealthRecord").First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	if !p.IsAdmin() && ap.HealthRecord.UserID != p.UserID {
		httperr.Forbidden(c, "forbidden", "Not your appointment.")
		return
	}

	var pay models.Payment
	if err := h.db.Where("appointment_id = ?", ap.ID).First(&pay).Error; err != nil {
		httperr.NotFound(c, "payment_not_found", "Payment not found.")
		return
	}

	httpresp.OK(c, pay)
}
