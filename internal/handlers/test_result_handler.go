package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/httpresp"
	"github.com/clinicbooking/clinic-scheduler/internal/middleware"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
)

type TestResultHandler struct {
	db *gorm.DB
}

func NewTestResultHandler(db *gorm.DB) *TestResultHandler {
	return &TestResultHandler{db: db}
}

// --------- Requests ---------

type CreateTestResultRequest struct {
	HealthRecordID uint   `json:"health_record_id" binding:"required"`
	TestName       string `json:"test_name" binding:"required"`
	Description    string `json:"description"`
}

// --------- Handlers ---------

// Create is doctor-only; the doctor must have an appointment with the record.
func (h *TestResultHandler) Create(c *gin.Context) {
	p := middleware.Principal(c)

	var req CreateTestResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid test result data.")
		return
	}

	var record models.HealthRecord
	if err := h.db.First(&record, req.HealthRecordID).Error; err != nil {
		httperr.NotFound(c, "record_not_found", "Health record not found.")
		return
	}

	var count int64
	h.db.Model(&models.Appointment{}).
		Joins("JOIN schedules ON schedules.id = appointments.schedule_id").
		Where("appointments.health_record_id = ? AND schedules.doctor_id = ? AND appointments.status <> 'cancelled'",
			record.ID, p.UserID).
		Count(&count)
	if !p.IsAdmin() && count == 0 {
		httperr.Forbidden(c, "forbidden", "No appointment with this patient.")
		return
	}

	tr := models.TestResult{
		HealthRecordID: record.ID,
		TestName:       req.TestName,
		Description:    req.Description,
	}

	if err := h.db.Create(&tr).Error; err != nil {
		httperr.Internal(c, "failed_to_create_result", "Could not save test result.")
		return
	}

	httpresp.Created(c, tr)
}

// ListForRecord lists results the caller is allowed to read: the record's
// owner, a treating doctor, or an admin.
func (h *TestResultHandler) ListForRecord(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	p := middleware.Principal(c)

	var record models.HealthRecord
	if err := h.db.First(&record, id).Error; err != nil {
		httperr.NotFound(c, "record_not_found", "Health record not found.")
		return
	}

	if record.UserID != p.UserID && !p.IsAdmin() {
		var count int64
		h.db.Model(&models.Appointment{}).
			Joins("JOIN schedules ON schedules.id = appointments.schedule_id").
			Where("appointments.health_record_id = ? AND schedules.doctor_id = ? AND appointments.status <> 'cancelled'",
				record.ID, p.UserID).
			Count(&count)
		if count == 0 {
			httperr.Forbidden(c, "forbidden", "Not your health record.")
			return
		}
	}

	var results []models.TestResult
	if err := h.db.
		Where("health_record_id = ?", record.ID).
		Order("id DESC").
		Find(&results).Error; err != nil {
		httperr.Internal(c, "failed_to_list_results", "Could not load test results.")
		return
	}

	httpresp.List(c, results)
}
