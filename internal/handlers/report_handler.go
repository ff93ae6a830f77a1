package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicbooking/clinic-scheduler/internal/httperr"
	"github.com/clinicbooking/clinic-scheduler/internal/httpresp"
	"github.com/clinicbooking/clinic-scheduler/internal/models"
)

type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

type revenueReport struct {
	From              string  `json:"from"`
	To                string  `json:"to"`
	TotalAppointments int64   `json:"total_appointments"`
	Completed         int64   `json:"completed"`
	Cancelled         int64   `json:"cancelled"`
	PaidPayments      int64   `json:"paid_payments"`
	Revenue           float64 `json:"revenue"`
}

// Revenue aggregates paid payments and appointment counts over a date range.
// Admin only (enforced by the route group).
func (h *ReportHandler) Revenue(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		httperr.BadRequest(c, "missing_range", "Query params 'from' and 'to' are required.")
		return
	}

	report := revenueReport{From: from, To: to}

	// each count gets a fresh query; gorm chains are not reusable after a
	// finisher
	appointmentsInRange := func() *gorm.DB {
		return h.db.Model(&models.Appointment{}).
			Joins("JOIN schedules ON schedules.id = appointments.schedule_id").
			Where("schedules.date BETWEEN ? AND ?", from, to)
	}

	if err := appointmentsInRange().Count(&report.TotalAppointments).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "Could not build report.")
		return
	}
	if err := appointmentsInRange().
		Where("appointments.status = 'completed'").
		Count(&report.Completed).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "Could not build report.")
		return
	}
	if err := appointmentsInRange().
		Where("appointments.status = 'cancelled'").
		Count(&report.Cancelled).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "Could not build report.")
		return
	}

	row := struct {
		Count int64
		Sum   float64
	}{}
	if err := h.db.Model(&models.Payment{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS sum").
		Joins("JOIN appointments ON appointments.id = payments.appointment_id").
		Joins("JOIN schedules ON schedules.id = appointments.schedule_id").
		Where("schedules.date BETWEEN ? AND ? AND payments.status = 'paid'", from, to).
		Scan(&row).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "Could not build report.")
		return
	}
	report.PaidPayments = row.Count
	report.Revenue = row.Sum

	httpresp.OK(c, report)
}
