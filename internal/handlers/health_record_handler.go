package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/httpresp"
	"github.com/clinicbooking/clinic-scheduler/internal/middleware"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
)

type HealthRecordHandler struct {
	db *gorm.DB
}

func NewHealthRecordHandler(db *gorm.DB) *HealthRecordHandler {
	return &HealthRecordHandler{db: db}
}

// --------- Requests ---------

type CreateHealthRecordRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Gender      string `json:"gender"`
	Phone       string `json:"phone" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	InsuranceNo string `json:"insurance_no" binding:"required"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
	Occupation  string `json:"occupation"`
	Address     string `json:"address"`
}

type UpdateMedicalHistoryRequest struct {
	MedicalHistory string `json:"medical_history" binding:"required"`
}

// --------- Handlers ---------

func (h *HealthRecordHandler) Create(c *gin.Context) {
	p := middleware.Principal(c)

	var req CreateHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid health record data.")
		return
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date of birth.")
		return
	}

	gender := req.Gender
	if gender == "" {
		gender = "male"
	}

	record := models.HealthRecord{
		UserID:      p.UserID,
		FullName:    req.FullName,
		Gender:      gender,
		Phone:       req.Phone,
		Email:       req.Email,
		InsuranceNo: req.InsuranceNo,
		DateOfBirth: dob,
		Occupation:  req.Occupation,
		Address:     req.Address,
	}

	if err := h.db.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "insurance_no_exists", "Insurance number already registered.")
			return
		}
		httperr.Internal(c, "failed_to_create_record", "Could not create health record.")
		return
	}

	httpresp.Created(c, record)
}

func (h *HealthRecordHandler) ListMine(c *gin.Context) {
	p := middleware.Principal(c)

	var records []models.HealthRecord
	if err := h.db.
		Where("user_id = ?", p.UserID).
		Order("id ASC").
		Find(&records).Error; err != nil {
		httperr.Internal(c, "failed_to_list_records", "Could not load health records.")
		return
	}

	httpresp.List(c, records)
}

func (h *HealthRecordHandler) Get(c *gin.Context) {
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

	if !h.canAccess(p.UserID, p.IsAdmin() || p.IsDoctor(), &record) {
		httperr.Forbidden(c, "forbidden", "Not your health record.")
		return
	}

	httpresp.OK(c, record)
}

// UpdateMedicalHistory is a doctor-only write: the doctor must have a
// non-cancelled appointment with the record to touch it.
func (h *HealthRecordHandler) UpdateMedicalHistory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	p := middleware.Principal(c)

	var req UpdateMedicalHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Medical history is required.")
		return
	}

	var record models.HealthRecord
	if err := h.db.First(&record, id).Error; err != nil {
		httperr.NotFound(c, "record_not_found", "Health record not found.")
		return
	}

	if !p.IsAdmin() && !h.doctorTreats(p.UserID, record.ID) {
		httperr.Forbidden(c, "forbidden", "No appointment with this patient.")
		return
	}

	if err := h.db.Model(&record).Update("medical_history", req.MedicalHistory).Error; err != nil {
		httperr.Internal(c, "failed_to_update_record", "Could not update health record.")
		return
	}

	record.MedicalHistory = req.MedicalHistory
	httpresp.OK(c, record)
}

// --------- Access checks ---------

func (h *HealthRecordHandler) canAccess(userID uint, staff bool, record *models.HealthRecord) bool {
	if record.UserID == userID {
		return true
	}
	if !staff {
		return false
	}
	return h.doctorTreats(userID, record.ID) || h.isAdmin(userID)
}

func (h *HealthRecordHandler) isAdmin(userID uint) bool {
	var count int64
	h.db.Model(&models.User{}).
		Where("id = ? AND role = 'admin'", userID).
		Count(&count)
	return count > 0
}

func (h *HealthRecordHandler) doctorTreats(doctorUserID, recordID uint) bool {
	var count int64
	h.db.Model(&models.Appointment{}).
		Joins("JOIN schedules ON schedules.id = appointments.schedule_id").
		Where("appointments.health_record_id = ? AND schedules.doctor_id = ? AND appointments.status <> 'cancelled'",
			recordID, doctorUserID).
		Count(&count)
	return count > 0
}
