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

// PrescriptionHandler handles prescriptions.
type PrescriptionHandler struct {
	DB *gorm.DB
}

// NewPrescriptionHandler creates a new PrescriptionHandler.
func NewPrescriptionHandler(db *gorm.DB) *PrescriptionHandler {
	return &PrescriptionHandler{DB: db}
}

// ListPrescriptions returns every prescription with its patient, newest first.
func (h *PrescriptionHandler) ListPrescriptions(c *gin.Context) {
	var prescriptions []models.Prescription
	if err := h.DB.Preload("Patient").Order("created_at desc").Find(&prescriptions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"prescriptions": prescriptions})
}

// PatientListPrescriptions returns only the calling patient's prescriptions.
func (h *PrescriptionHandler) PatientListPrescriptions(c *gin.Context) {
	identity, exists := middleware.IdentityFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	var prescriptions []models.Prescription
	if err := h.DB.Where("patient_id = ?", identity.ID).Order("created_at desc").Find(&prescriptions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"prescriptions": prescriptions})
}

// CreatePrescriptionRequest represents the body for issuing a prescription.
type CreatePrescriptionRequest struct {
	PatientID uint   `json:"patient_id" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

// CreatePrescription issues a prescription to a patient.
func (h *PrescriptionHandler) CreatePrescription(c *gin.Context) {
	var req CreatePrescriptionRequest
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

	prescription := models.Prescription{
		PatientID:   req.PatientID,
		Content:     req.Content,
		CreatedDate: time.Now().Format(time.DateOnly),
	}

	if err := h.DB.Create(&prescription).Error; err != nil {
		utils.InternalServerError(c, "Failed to create prescription: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Prescription created", "prescription": prescription})
}

// UpdatePrescriptionRequest represents the body for editing a prescription.
type UpdatePrescriptionRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdatePrescription replaces the content of a prescription.
func (h *PrescriptionHandler) UpdatePrescription(c *gin.Context) {
	var prescription models.Prescription
	if err := h.DB.First(&prescription, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Prescription not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var req UpdatePrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	prescription.Content = req.Content
	if err := h.DB.Save(&prescription).Error; err != nil {
		utils.InternalServerError(c, "Failed to update prescription: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prescription updated", "prescription": prescription})
}

// DeletePrescription removes a prescription.
func (h *PrescriptionHandler) DeletePrescription(c *gin.Context) {
	var prescription models.Prescription
	if err := h.DB.First(&prescription, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Prescription not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&prescription).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete prescription: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prescription deleted"})
}
