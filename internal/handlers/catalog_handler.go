package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/httpresp"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
)

// CatalogHandler serves the reference data doctors register against.
type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// --------- Requests ---------

type CreateHospitalRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type CreateSpecializationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// --------- Handlers ---------

func (h *CatalogHandler) ListHospitals(c *gin.Context) {
	var hospitals []models.Hospital
	if err := h.db.Order("name ASC").Find(&hospitals).Error; err != nil {
		httperr.Internal(c, "failed_to_list_hospitals", "Could not load hospitals.")
		return
	}
	httpresp.List(c, hospitals)
}

func (h *CatalogHandler) ListSpecializations(c *gin.Context) {
	var specs []models.Specialization
	if err := h.db.Order("name ASC").Find(&specs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_specializations", "Could not load specializations.")
		return
	}
	httpresp.List(c, specs)
}

func (h *CatalogHandler) CreateHospital(c *gin.Context) {
	var req CreateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid hospital data.")
		return
	}

	hospital := models.Hospital{Name: req.Name, Address: req.Address, Phone: req.Phone}
	if err := h.db.Create(&hospital).Error; err != nil {
		httperr.Internal(c, "failed_to_create_hospital", "Could not create hospital.")
		return
	}

	httpresp.Created(c, hospital)
}

func (h *CatalogHandler) CreateSpecialization(c *gin.Context) {
	var req CreateSpecializationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid specialization data.")
		return
	}

	spec := models.Specialization{Name: req.Name, Description: req.Description}
	if err := h.db.Create(&spec).Error; err != nil {
		httperr.Internal(c, "failed_to_create_specialization", "Could not create specialization.")
		return
	}

	httpresp.Created(c, spec)
}
