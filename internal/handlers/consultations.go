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

// ConsultationHandler handles consultation notes.
type ConsultationHandler struct {
	DB *gorm.DB
}

// NewConsultationHandler creates a new ConsultationHandler.
func NewConsultationHandler(db *gorm.DB) *ConsultationHandler {
	return &ConsultationHandler{DB: db}
}

// ListConsultations returns every consultation with its patient, newest first.
func (h *ConsultationHandler) ListConsultations(c *gin.Context) {
	var consultations []models.Consultation
	if err := h.DB.Preload("Patient").Order("created_at desc").Find(&consultations).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch consultations: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"consultations": consultations})
}

// PatientListConsultations returns only the calling patient's consultations.
func (h *ConsultationHandler) PatientListConsultations(c *gin.Context) {
	identity, exists := middleware.IdentityFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	var consultations []models.Consultation
	if err := h.DB.Where("patient_id = ?", identity.ID).Order("created_at desc").Find(&consultations).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch consultations: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"consultations": consultations})
}

// CreateConsultationRequest represents the body for recording a consultation.
type CreateConsultationRequest struct {
	PatientID uint   `json:"patient_id" binding:"required"`
	Notes     string `json:"notes" binding:"required"`
}

// CreateConsultation records a consultation for a patient.
func (h *ConsultationHandler) CreateConsultation(c *gin.Context) {
	var req CreateConsultationRequest
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

	consultation := models.Consultation{
		PatientID:   req.PatientID,
		Notes:       req.Notes,
		CreatedDate: time.Now().Format(time.DateOnly),
	}

	if err := h.DB.Create(&consultation).Error; err != nil {
		utils.InternalServerError(c, "Failed to create consultation: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Consultation created", "consultation": consultation})
}

// UpdateConsultationRequest represents the body for editing consultation notes.
type UpdateConsultationRequest struct {
	Notes string `json:"notes" binding:"required"`
}

// UpdateConsultation replaces the notes of a consultation.
func (h *ConsultationHandler) UpdateConsultation(c *gin.Context) {
	var consultation models.Consultation
	if err := h.DB.First(&consultation, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Consultation not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var req UpdateConsultationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	consultation.Notes = req.Notes
	if err := h.DB.Save(&consultation).Error; err != nil {
		utils.InternalServerError(c, "Failed to update consultation: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Consultation updated", "consultation": consultation})
}

// DeleteConsultation removes a consultation.
func (h *ConsultationHandler) DeleteConsultation(c *gin.Context) {
	var consultation models.Consultation
	if err := h.DB.First(&consultation, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Consultation not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&consultation).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete consultation: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Consultation deleted"})
}
