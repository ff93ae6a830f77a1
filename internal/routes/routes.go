package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/clinicbooking/clinic-scheduler/internal/audit"
	"github.com/clinicbooking/clinic-scheduler/internal/config"
	"github.com/clinicbooking/clinic-scheduler/internal/handlers"
	"github.com/clinicbooking/clinic-scheduler/internal/identity"
	infraRepo "github.com/clinicbooking/clinic-scheduler/internal/infra/repository"
	"github.com/clinicbooking/clinic-scheduler/internal/mailer"
	"github.com/clinicbooking/clinic-scheduler/internal/middleware"
	"github.com/clinicbooking/clinic-scheduler/internal/otp"
	"github.com/clinicbooking/clinic-scheduler/internal/payments"
	ucBooking "github.com/clinicbooking/clinic-scheduler/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	redisClient *redis.Client,
	mail *mailer.Dispatcher,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	otpStore := otp.NewStore(redisClient)
	gateway := payments.NewRazorpayGateway(cfg)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	bookUC := ucBooking.NewBook(bookingRepo, mail, auditDispatcher)
	cancelUC := ucBooking.NewCancel(bookingRepo, auditDispatcher, cfg.ClinicTimezone)
	rescheduleUC := ucBooking.NewReschedule(bookingRepo, mail, auditDispatcher, cfg.ClinicTimezone)
	completeUC := ucBooking.NewComplete(bookingRepo, auditDispatcher, cfg.ClinicTimezone)
	initiatePaymentUC := ucBooking.NewInitiatePayment(bookingRepo, gateway)
	confirmPaymentUC := ucBooking.NewConfirmPayment(bookingRepo, mail, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, otpStore, mail)
	bookingHandler := handlers.NewBookingHandler(db, bookUC, cancelUC, rescheduleUC, completeUC)
	paymentHandler := handlers.NewPaymentHandler(db, initiatePaymentUC, confirmPaymentUC)
	scheduleHandler := handlers.NewScheduleHandler(db, cfg)
	doctorHandler := handlers.NewDoctorHandler(db, mail, auditDispatcher)
	recordHandler := handlers.NewHealthRecordHandler(db)
	messageHandler := handlers.NewMessageHandler(db)
	testResultHandler := handlers.NewTestResultHandler(db)
	reviewHandler := handlers.NewReviewHandler(db)
	reportHandler := handlers.NewReportHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	catalogHandler := handlers.NewCatalogHandler(db)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/forgot-password", authHandler.ForgotPassword)
	r.POST("/auth/reset-password", authHandler.ResetPassword)

	r.GET("/doctors", doctorHandler.List)
	r.GET("/doctors/:id", doctorHandler.Get)
	r.GET("/doctors/:id/schedules", scheduleHandler.ListForDoctor)
	r.GET("/doctors/:id/reviews", reviewHandler.ListForDoctor)

	r.GET("/hospitals", catalogHandler.ListHospitals)
	r.GET("/specializations", catalogHandler.ListSpecializations)

	// payment provider callback; signature check happens upstream
	r.POST("/webhooks/payments", paymentHandler.Webhook)

	// ======================================================
	// AUTHENTICATED
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		secured.POST("/appointments", bookingHandler.Book)
		secured.GET("/appointments", bookingHandler.ListMine)
		secured.POST("/appointments/:id/cancel", bookingHandler.Cancel)
		secured.POST("/appointments/:id/reschedule", bookingHandler.Reschedule)
		secured.POST("/appointments/:id/payment", paymentHandler.Initiate)
		secured.GET("/appointments/:id/payment", paymentHandler.GetForAppointment)

		secured.POST("/health-records", recordHandler.Create)
		secured.GET("/health-records", recordHandler.ListMine)
		secured.GET("/health-records/:id", recordHandler.Get)
		secured.GET("/health-records/:id/test-results", testResultHandler.ListForRecord)

		secured.POST("/doctors/apply", doctorHandler.Register)

		secured.POST("/messages", messageHandler.Send)
		secured.GET("/messages", messageHandler.Inbox)
		secured.GET("/messages/:id", messageHandler.Conversation)

		secured.POST("/reviews", reviewHandler.Create)
	}

	// ======================================================
	// DOCTOR
	// ======================================================
	doctor := r.Group("/doctor")
	doctor.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(identity.RoleDoctor, identity.RoleAdmin))
	{
		doctor.POST("/schedules", scheduleHandler.Create)
		doctor.GET("/schedules", scheduleHandler.ListMine)
		doctor.GET("/schedules/:id/appointments", scheduleHandler.ListAppointments)
		doctor.POST("/appointments/:id/complete", bookingHandler.Complete)

		doctor.POST("/test-results", testResultHandler.Create)
		doctor.PATCH("/health-records/:id/medical-history", recordHandler.UpdateMedicalHistory)
		doctor.POST("/reviews/:id/reply", reviewHandler.Reply)
	}

	// ======================================================
	// ADMIN
	// ======================================================
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(identity.RoleAdmin))
	{
		admin.GET("/doctors/pending", doctorHandler.ListPending)
		admin.POST("/doctors/:id/approve", doctorHandler.Approve)

		admin.POST("/hospitals", catalogHandler.CreateHospital)
		admin.POST("/specializations", catalogHandler.CreateSpecialization)

		admin.GET("/reports/revenue", reportHandler.Revenue)
		admin.GET("/audit-logs", auditLogsHandler.List)
	}
}
