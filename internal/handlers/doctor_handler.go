package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicbooking/clinic-scheduler/internal/audit"
	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/httpresp"
	"github.com/clinicbooking/clinic-scheduler/internal/identity"
	"github.com/clinicbooking/clinic-scheduler/internal/mailer"
	"github.com/clinicbooking/clinic-scheduler/internal/middleware"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
)

type DoctorHandler struct {
	db    *gorm.DB
	mail  *mailer.Dispatcher
	audit *audit.Dispatcher
}

func NewDoctorHandler(db *gorm.DB, mail *mailer.Dispatcher, auditDisp *audit.Dispatcher) *DoctorHandler {
	return &DoctorHandler{db: db, mail: mail, audit: auditDisp}
}

// --------- Requests ---------

type RegisterDoctorRequest struct {
	LicenseNumber    string  `json:"license_number" binding:"required"`
	Biography        string  `json:"biography"`
	HospitalID       uint    `json:"hospital_id" binding:"required"`
	SpecializationID uint    `json:"specialization_id" binding:"required"`
	ConsultationFee  float64 `json:"consultation_fee"`
}

// --------- Public browse ---------

// List returns verified doctors, optionally filtered by specialization,
// hospital, or a name search.
func (h *DoctorHandler) List(c *gin.Context) {
	q := h.db.Model(&models.DoctorProfile{}).
		Preload("User").
		Preload("Hospital").
		Preload("Specialization").
		Where("verified = true")

	if spec := c.Query("specialization_id"); spec != "" {
		q = q.Where("specialization_id = ?", spec)
	}
	if hospital := c.Query("hospital_id"); hospital != "" {
		q = q.Where("hospital_id = ?", hospital)
	}
	if name := c.Query("name"); name != "" {
		q = q.Joins("JOIN users ON users.id = doctor_profiles.user_id").
			Where("users.name ILIKE ?", "%"+name+"%")
	}

	var profiles []models.DoctorProfile
	if err := q.Order("doctor_profiles.id ASC").Find(&profiles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_doctors", "Could not load doctors.")
		return
	}

	httpresp.List(c, profiles)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var profile models.DoctorProfile
	if err := h.db.
		Preload("User").
		Preload("Hospital").
		Preload("Specialization").
		Where("user_id = ? AND verified = true", id).
		First(&profile).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	httpresp.OK(c, profile)
}

// --------- Registration & approval ---------

// Register lets a logged-in user apply as a doctor. The profile stays
// unverified until an admin approves it.
func (h *DoctorHandler) Register(c *gin.Context) {
	p := middleware.Principal(c)

	var req RegisterDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid doctor profile data.")
		return
	}

	var count int64
	h.db.Model(&models.DoctorProfile{}).Where("user_id = ?", p.UserID).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "profile_exists", "Doctor profile already exists.")
		return
	}

	profile := models.DoctorProfile{
		UserID:           p.UserID,
		LicenseNumber:    req.LicenseNumber,
		Biography:        req.Biography,
		HospitalID:       req.HospitalID,
		SpecializationID: req.SpecializationID,
		ConsultationFee:  req.ConsultationFee,
	}

	if err := h.db.Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "license_exists", "License number already registered.")
			return
		}
		httperr.Internal(c, "failed_to_create_profile", "Could not create doctor profile.")
		return
	}

	httpresp.Created(c, profile)
}

// Approve marks a doctor profile verified and switches the user role. Admin
// only (enforced by the route group).
func (h *DoctorHandler) Approve(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	p := middleware.Principal(c)

	var profile models.DoctorProfile
	if err := h.db.Preload("User").First(&profile, id).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Doctor profile not found.")
		return
	}

	if profile.Verified {
		httperr.Conflict(c, "already_verified", "Doctor is already approved.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&profile).Update("verified", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", profile.UserID).
			Update("role", string(identity.RoleDoctor)).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_approve", "Could not approve doctor.")
		return
	}

	h.mail.DoctorApproved(mailer.DoctorApproval{
		Name:  profile.User.Name,
		Email: profile.User.Email,
	})
	h.audit.Dispatch(audit.Event{
		UserID:   &p.UserID,
		Action:   "doctor_approved",
		Entity:   "doctor_profile",
		EntityID: &profile.ID,
	})

	profile.Verified = true
	httpresp.OK(c, profile)
}

// ListPending lists unapproved profiles for the admin review queue.
func (h *DoctorHandler) ListPending(c *gin.Context) {
	var profiles []models.DoctorProfile
	if err := h.db.
		Preload("User").
		Preload("Hospital").
		Preload("Specialization").
		Where("verified = false").
		Order("id ASC").
		Find(&profiles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_doctors", "Could not load profiles.")
		return
	}

	httpresp.List(c, profiles)
}
