package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/httpresp"
	"github.com/clinicbooking/clinic-scheduler/internal/middleware"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
)

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

// --------- Requests ---------

type CreateReviewRequest struct {
	DoctorID uint   `json:"doctor_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

type ReplyReviewRequest struct {
	Reply string `json:"reply" binding:"required"`
}

// --------- Handlers ---------

// Create requires a completed appointment with the doctor.
func (h *ReviewHandler) Create(c *gin.Context) {
	p := middleware.Principal(c)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid review data.")
		return
	}

	var count int64
	h.db.Model(&models.Appointment{}).
		Joins("JOIN schedules ON schedules.id = appointments.schedule_id").
		Joins("JOIN health_records ON health_records.id = appointments.health_record_id").
		Where("health_records.user_id = ? AND schedules.doctor_id = ? AND appointments.status = 'completed'",
			p.UserID, req.DoctorID).
		Count(&count)
	if count == 0 {
		httperr.Forbidden(c, "no_completed_appointment", "You can only review doctors after a completed appointment.")
		return
	}

	h.db.Model(&models.Review{}).
		Where("patient_id = ? AND doctor_id = ?", p.UserID, req.DoctorID).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "already_reviewed", "You already reviewed this doctor.")
		return
	}

	review := models.Review{
		PatientID: p.UserID,
		DoctorID:  req.DoctorID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := h.db.Create(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_create_review", "Could not save review.")
		return
	}

	httpresp.Created(c, review)
}

// ListForDoctor is public.
func (h *ReviewHandler) ListForDoctor(c *gin.Context) {
	doctorID, ok := paramID(c)
	if !ok {
		return
	}

	var reviews []models.Review
	if err := h.db.
		Where("doctor_id = ?", doctorID).
		Order("id DESC").
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not load reviews.")
		return
	}

	httpresp.List(c, reviews)
}

// Reply lets the reviewed doctor respond once.
func (h *ReviewHandler) Reply(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	p := middleware.Principal(c)

	var req ReplyReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Reply text is required.")
		return
	}

	var review models.Review
	if err := h.db.First(&review, id).Error; err != nil {
		httperr.NotFound(c, "review_not_found", "Review not found.")
		return
	}

	if review.DoctorID != p.UserID {
		httperr.Forbidden(c, "forbidden", "Not your review.")
		return
	}
	if review.Reply != "" {
		httperr.Conflict(c, "already_replied", "Review already has a reply.")
		return
	}

	if err := h.db.Model(&review).Update("reply", req.Reply).Error; err != nil {
		httperr.Internal(c, "failed_to_update_review", "Could not save reply.")
		return
	}

	review.Reply = req.Reply
	httpresp.OK(c, review)
}
