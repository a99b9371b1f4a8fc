package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/handlers"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	assistantHandler := handlers.NewAssistantHandler(db)
	consultationHandler := handlers.NewConsultationHandler(db)
	prescriptionHandler := handlers.NewPrescriptionHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		public.POST("/patient/register", authHandler.PatientRegister)
		public.POST("/patient/login", authHandler.PatientLogin)
		public.POST("/doctor/register", authHandler.DoctorRegister)
		public.POST("/doctor/login", authHandler.DoctorLogin)
		public.POST("/assistant/login", authHandler.AssistantLogin)
		public.POST("/auth/refresh-token", authHandler.RefreshToken)
	}

	// Patient routes
	patient := router.Group("/api/v1/patient")
	patient.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(models.RolePatient))
	{
		patient.POST("/logout", authHandler.Logout)
		patient.GET("/profile", authHandler.Profile)

		patient.GET("/appointments", appointmentHandler.PatientListAppointments)
		patient.POST("/appointments", appointmentHandler.PatientCreateAppointment)
		patient.PUT("/appointments/:id", appointmentHandler.PatientRescheduleAppointment)
		patient.DELETE("/appointments/:id", appointmentHandler.PatientCancelAppointment)

		patient.GET("/consultations", consultationHandler.PatientListConsultations)
		patient.GET("/prescriptions", prescriptionHandler.PatientListPrescriptions)
	}

	// Doctor routes
	doctor := router.Group("/api/v1/doctor")
	doctor.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(models.RoleDoctor))
	{
		doctor.POST("/logout", authHandler.Logout)
		doctor.GET("/profile", authHandler.Profile)

		doctor.GET("/appointments", appointmentHandler.StaffListAppointments)
		doctor.PUT("/appointments/:id", appointmentHandler.StaffUpdateAppointment)
		doctor.DELETE("/appointments/:id", appointmentHandler.StaffDeleteAppointment)

		doctor.GET("/consultations", consultationHandler.ListConsultations)
		doctor.POST("/consultations", consultationHandler.CreateConsultation)
		doctor.PUT("/consultations/:id", consultationHandler.UpdateConsultation)
		doctor.DELETE("/consultations/:id", consultationHandler.DeleteConsultation)

		doctor.GET("/prescriptions", prescriptionHandler.ListPrescriptions)
		doctor.POST("/prescriptions", prescriptionHandler.CreatePrescription)
		doctor.PUT("/prescriptions/:id", prescriptionHandler.UpdatePrescription)
		doctor.DELETE("/prescriptions/:id", prescriptionHandler.DeletePrescription)

		doctor.GET("/assistants", assistantHandler.ListAssistants)
		doctor.GET("/assistants/:id", assistantHandler.GetAssistant)
		doctor.POST("/assistants", assistantHandler.CreateAssistant)
		doctor.PUT("/assistants/:id", assistantHandler.UpdateAssistant)
		doctor.DELETE("/assistants/:id", assistantHandler.DeleteAssistant)

		doctor.GET("/patients", patientHandler.ListPatients)
		doctor.GET("/patients/:id", patientHandler.GetPatient)
		doctor.POST("/patients", patientHandler.CreatePatient)
		doctor.PUT("/patients/:id", patientHandler.UpdatePatient)
		doctor.DELETE("/patients/:id", patientHandler.DeletePatient)
	}

	// Assistant routes
	assistant := router.Group("/api/v1/assistant")
	assistant.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(models.RoleAssistant))
	{
		assistant.POST("/logout", authHandler.Logout)
		assistant.GET("/profile", authHandler.Profile)

		assistant.GET("/appointments", appointmentHandler.StaffListAppointments)
		assistant.POST("/appointments", appointmentHandler.StaffCreateAppointment)
		assistant.PUT("/appointments/:id", appointmentHandler.StaffUpdateAppointment)
		assistant.DELETE("/appointments/:id", appointmentHandler.StaffDeleteAppointment)

		assistant.GET("/patients", patientHandler.ListPatients)
		assistant.GET("/patients/:id", patientHandler.GetPatient)
		assistant.POST("/patients", patientHandler.CreatePatient)
		assistant.PUT("/patients/:id", patientHandler.UpdatePatient)
		assistant.DELETE("/patients/:id", patientHandler.DeletePatient)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
