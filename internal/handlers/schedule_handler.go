package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicbooking/clinic-scheduler/internal/config"
	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/httpresp"
	"github.com/clinicbooking/clinic-scheduler/internal/identity"
	"github.com/clinicbooking/clinic-scheduler/internal/middleware"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
	"github.com/clinicbooking/clinic-scheduler/internal/timezone"
)

type ScheduleHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewScheduleHandler(db *gorm.DB, cfg *config.Config) *ScheduleHandler {
	return &ScheduleHandler{db: db, config: cfg}
}

// --------- Requests ---------

type CreateScheduleRequest struct {
	DoctorID  uint   `json:"doctor_id"` // admin only; doctors create their own
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Capacity  int    `json:"capacity"`
}

// --------- Handlers ---------

func (h *ScheduleHandler) Create(c *gin.Context) {
	p := middleware.Principal(c)

	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid schedule data.")
		return
	}

	doctorID := p.UserID
	if p.Role == identity.RoleAdmin {
		if req.DoctorID == 0 {
			httperr.BadRequest(c, "missing_doctor", "Doctor is required.")
			return
		}
		doctorID = req.DoctorID
	}

	var profile models.DoctorProfile
	if err := h.db.Where("user_id = ?", doctorID).First(&profile).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}
	if !profile.Verified {
		httperr.BadRequest(c, "doctor_not_verified", "Doctor is not approved yet.")
		return
	}

	loc := timezone.Location(h.config.ClinicTimezone)
	date, err := time.ParseInLocation("2006-01-02", req.Date, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	start, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_time", "Invalid start time.")
		return
	}
	end, err := time.Parse("15:04", req.EndTime)
	if err != nil || !end.After(start) {
		httperr.BadRequest(c, "invalid_time", "Invalid end time.")
		return
	}

	capacity := req.Capacity
	if capacity <= 0 {
		capacity = 1
	}

	sched := models.Schedule{
		DoctorID:  doctorID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Capacity:  capacity,
		Active:    true,
	}

	if err := h.db.Create(&sched).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "schedule_exists", "A schedule at this time already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_schedule", "Could not create schedule.")
		return
	}

	httpresp.Created(c, sched)
}

// ListForDoctor lists a doctor's open future slots for patients to pick from.
func (h *ScheduleHandler) ListForDoctor(c *gin.Context) {
	doctorID, ok := paramID(c)
	if !ok {
		return
	}

	today := timezone.NowIn(h.config.ClinicTimezone).Format("2006-01-02")

	var schedules []models.Schedule
	if err := h.db.
		Where("doctor_id = ? AND active = true AND date >= ?", doctorID, today).
		Order("date ASC, start_time ASC").
		Find(&schedules).Error; err != nil {
		httperr.Internal(c, "failed_to_list_schedules", "Could not load schedules.")
		return
	}

	httpresp.List(c, schedules)
}

// ListMine is the doctor's own day sheet.
func (h *ScheduleHandler) ListMine(c *gin.Context) {
	p := middleware.Principal(c)

	q := h.db.Where("doctor_id = ?", p.UserID)
	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}

	var schedules []models.Schedule
	if err := q.Order("date ASC, start_time ASC").Find(&schedules).Error; err != nil {
		httperr.Internal(c, "failed_to_list_schedules", "Could not load schedules.")
		return
	}

	httpresp.List(c, schedules)
}

// ListAppointments shows the doctor who is booked into one of their slots.
func (h *ScheduleHandler) ListAppointments(c *gin.Context) {
	p := middleware.Principal(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var sched models.Schedule
	if err := h.db.First(&sched, id).Error; err != nil {
		httperr.NotFound(c, "schedule_not_found", "Schedule not found.")
		return
	}

	if !p.IsAdmin() && sched.DoctorID != p.UserID {
		httperr.Forbidden(c, "forbidden", "Not your schedule.")
		return
	}

	var aps []models.Appointment
	if err := h.db.
		Preload("HealthRecord").
		Where("schedule_id = ? AND status <> 'cancelled'", id).
		Order("id ASC").
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not load appointments.")
		return
	}

	httpresp.List(c, aps)
}
