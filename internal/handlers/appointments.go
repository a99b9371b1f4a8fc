package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB *gorm.DB
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{DB: db}
}

// hasScheduledAppointment reports whether the patient already has a
// scheduled appointment on file. Invoked only on the patient self-service
// booking path; staff-initiated creation bypasses it. The check-then-insert
// window is not race-proof without a store-level constraint.
func (h *AppointmentHandler) hasScheduledAppointment(patientID uint) (bool, error) {
	var count int64
	err := h.DB.Model(&models.Appointment{}).
		Where("patient_id = ? AND status = ?", patientID, models.StatusScheduled).
		Count(&count).Error
	return count > 0, err
}

// CreateAppointmentRequest represents the patient's booking request body.
type CreateAppointmentRequest struct {
	Time   time.Time `json:"time" binding:"required"`
	Status string    `json:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
}

// PatientCreateAppointment schedules a new appointment for the calling patient.
func (h *AppointmentHandler) PatientCreateAppointment(c *gin.Context) {
	identity, exists := middleware.IdentityFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !req.Time.After(time.Now()) {
		utils.UnprocessableEntity(c, "The time must be a date after now")
		return
	}

	booked, err := h.hasScheduledAppointment(identity.ID)
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if booked {
		utils.Conflict(c, "You already have a scheduled appointment")
		return
	}

	status := models.StatusScheduled
	if req.Status != "" {
		status = models.AppointmentStatus(req.Status)
	}

	appointment := models.Appointment{
		PatientID:   identity.ID,
		Time:        req.Time,
		Status:      status,
		CreatedDate: time.Now().Format(time.DateOnly),
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Appointment scheduled", "appointment": appointment})
}

// PatientListAppointments returns only the calling patient's appointments.
func (h *AppointmentHandler) PatientListAppointments(c *gin.Context) {
	identity, exists := middleware.IdentityFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	var appointments []models.Appointment
	if err := h.DB.Where("patient_id = ?", identity.ID).Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

// RescheduleAppointmentRequest represents the patient's reschedule body.
type RescheduleAppointmentRequest struct {
	Time time.Time `json:"time" binding:"required"`
}

// PatientRescheduleAppointment moves one of the patient's own appointments
// to a new time. The row must not be completed; status and ownership are
// never changed here.
func (h *AppointmentHandler) PatientRescheduleAppointment(c *gin.Context) {
	identity, exists := middleware.IdentityFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	// Lookup is scoped to the caller; rows owned by someone else read as
	// missing rather than forbidden.
	var appointment models.Appointment
	if err := h.DB.Where("id = ? AND patient_id = ?", c.Param("id"), identity.ID).
		First(&appointment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if appointment.Status == models.StatusCompleted {
		utils.Forbidden(c, "Completed appointments cannot be modified")
		return
	}

	var req RescheduleAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !req.Time.After(time.Now()) {
		utils.UnprocessableEntity(c, "The time must be a date after now")
		return
	}

	appointment.Time = req.Time
	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to reschedule appointment: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment rescheduled", "appointment": appointment})
}

// PatientCancelAppointment removes one of the patient's own appointments.
// Cancellation on this path deletes the row outright; completed rows stay.
func (h *AppointmentHandler) PatientCancelAppointment(c *gin.Context) {
	identity, exists := middleware.IdentityFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	var appointment models.Appointment
	if err := h.DB.Where("id = ? AND patient_id = ?", c.Param("id"), identity.ID).
		First(&appointment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if appointment.Status == models.StatusCompleted {
		utils.Forbidden(c, "Completed appointments cannot be cancelled")
		return
	}

	if err := h.DB.Delete(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to cancel appointment: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// StaffListAppointments returns every appointment with its patient attached,
// newest first.
func (h *AppointmentHandler) StaffListAppointments(c *gin.Context) {
	var appointments []models.Appointment
	if err := h.DB.Preload("Patient").Order("created_at desc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

// StaffCreateAppointmentRequest represents the staff booking body.
type StaffCreateAppointmentRequest struct {
	PatientID uint      `json:"patient_id" binding:"required"`
	Time      time.Time `json:"time" binding:"required"`
	Status    string    `json:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
}

// StaffCreateAppointment books an appointment on behalf of a patient.
// Unlike the self-service path, an existing scheduled appointment for the
// patient does not block the booking.
func (h *AppointmentHandler) StaffCreateAppointment(c *gin.Context) {
	var req StaffCreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, req.PatientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.UnprocessableEntity(c, "The selected patient_id is invalid")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !req.Time.After(time.Now()) {
		utils.UnprocessableEntity(c, "The time must be a date after now")
		return
	}

	status := models.StatusScheduled
	if req.Status != "" {
		status = models.AppointmentStatus(req.Status)
	}

	appointment := models.Appointment{
		PatientID:   req.PatientID,
		Time:        req.Time,
		Status:      status,
		CreatedDate: time.Now().Format(time.DateOnly),
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Appointment created", "appointment": appointment})
}

// StaffUpdateAppointmentRequest represents the staff update body. Either
// field may be omitted; present fields are applied as given.
type StaffUpdateAppointmentRequest struct {
	Time   *time.Time `json:"time"`
	Status string     `json:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
}

// StaffUpdateAppointment sets status and/or time on any appointment.
// Staff may move a row between any of the three statuses; there is no
// completed guard on this path.
func (h *AppointmentHandler) StaffUpdateAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var req StaffUpdateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.Time != nil {
		if !req.Time.After(time.Now()) {
			utils.UnprocessableEntity(c, "The time must be a date after now")
			return
		}
		appointment.Time = *req.Time
	}
	if req.Status != "" {
		appointment.Status = models.AppointmentStatus(req.Status)
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment updated", "appointment": appointment})
}

// StaffDeleteAppointment removes any appointment, completed or not.
func (h *AppointmentHandler) StaffDeleteAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}
