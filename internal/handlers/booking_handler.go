package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicbooking/clinic-scheduler/internal/dto"
	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/httpresp"
	"github.com/clinicbooking/clinic-scheduler/internal/middleware"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
	ucBooking "github.com/clinicbooking/clinic-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db           *gorm.DB
	bookUC       *ucBooking.Book
	cancelUC     *ucBooking.Cancel
	rescheduleUC *ucBooking.Reschedule
	completeUC   *ucBooking.Complete
}

func NewBookingHandler(
	db *gorm.DB,
	bookUC *ucBooking.Book,
	cancelUC *ucBooking.Cancel,
	rescheduleUC *ucBooking.Reschedule,
	completeUC *ucBooking.Complete,
) *BookingHandler {
	return &BookingHandler{
		db:           db,
		bookUC:       bookUC,
		cancelUC:     cancelUC,
		rescheduleUC: rescheduleUC,
		completeUC:   completeUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	HealthRecordID uint   `json:"health_record_id" binding:"required"`
	ScheduleID     uint   `json:"schedule_id" binding:"required"`
	DiseaseType    string `json:"disease_type" binding:"required"`
	Symptoms       string `json:"symptoms"`
	PaymentMethod  string `json:"payment_method" binding:"required"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type RescheduleAppointmentRequest struct {
	ScheduleID uint `json:"schedule_id" binding:"required"`
}

// ======================================================
// BOOK / CANCEL / RESCHEDULE / COMPLETE
// ======================================================

func (h *BookingHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), middleware.Principal(c), ucBooking.BookInput{
		HealthRecordID: req.HealthRecordID,
		ScheduleID:     req.ScheduleID,
		DiseaseType:    req.DiseaseType,
		Symptoms:       req.Symptoms,
		PaymentMethod:  req.PaymentMethod,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Cancellation reason is required.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), middleware.Principal(c), id, req.Reason)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *BookingHandler) Reschedule(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Target schedule is required.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), middleware.Principal(c), id, req.ScheduleID)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LIST (patient's own appointments)
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	p := middleware.Principal(c)

	var aps []models.Appointment
	if err := h.db.
		Preload("Schedule").
		Preload("HealthRecord").
		Joins("JOIN health_records ON health_records.id = appointments.health_record_id").
		Where("health_records.user_id = ?", p.UserID).
		Order("appointments.id DESC").
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not load appointments.")
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		var doctor models.User
		h.db.First(&doctor, ap.Schedule.DoctorID)

		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			Date:        ap.Schedule.Date,
			StartTime:   ap.Schedule.StartTime,
			EndTime:     ap.Schedule.EndTime,
			Status:      ap.Status,
			DiseaseType: ap.DiseaseType,
			DoctorName:  doctor.Name,
			PatientName: ap.HealthRecord.FullName,
		})
	}

	httpresp.List(c, out)
}

// ======================================================
// HELPERS
// ======================================================

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid identifier.")
		return 0, false
	}
	return uint(id), true
}

func writeUsecaseError(c *gin.Context, err error) {
	if httperr.WriteBusiness(c, err) {
		return
	}
	httperr.Internal(c, "internal_error", "Something went wrong.")
}
