package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// PatientHandler handles staff management of patient records.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// ListPatients returns every patient, newest first.
func (h *PatientHandler) ListPatients(c *gin.Context) {
	var patients []models.Patient
	if err := h.DB.Order("created_at desc").Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

// GetPatient returns a single patient by id.
func (h *PatientHandler) GetPatient(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"patient": patient})
}

// CreatePatientRequest represents the body for adding a patient record.
type CreatePatientRequest struct {
	FullName string     `json:"full_name" binding:"required,max=255"`
	Gender   string     `json:"gender" binding:"required,oneof=male female other"`
	Phone    string     `json:"phone" binding:"required"`
	Birthday *time.Time `json:"birthday"`
	Address  string     `json:"address" binding:"omitempty,max=255"`
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=4"`
	Weight   *int       `json:"weight"`
	Height   *float64   `json:"height"`
}

// CreatePatient adds a patient record on behalf of the clinic.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existing models.Patient
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.UnprocessableEntity(c, "The email has already been taken")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	patient := models.Patient{
		FullName: req.FullName,
		Gender:   req.Gender,
		Phone:    req.Phone,
		Birthday: req.Birthday,
		Address:  req.Address,
		Weight:   req.Weight,
		Height:   req.Height,
	}
	patient.Email = req.Email
	if err := patient.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if err := h.DB.Create(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to create patient: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Patient created", "patient": patient})
}

// UpdatePatientRequest represents the body for a partial patient update.
type UpdatePatientRequest struct {
	FullName string     `json:"full_name" binding:"omitempty,max=255"`
	Gender   string     `json:"gender" binding:"omitempty,oneof=male female other"`
	Phone    string     `json:"phone"`
	Birthday *time.Time `json:"birthday"`
	Address  string     `json:"address" binding:"omitempty,max=255"`
	Email    string     `json:"email" binding:"omitempty,email"`
	Password string     `json:"password" binding:"omitempty,min=4"`
	Weight   *int       `json:"weight"`
	Height   *float64   `json:"height"`
}

// UpdatePatient applies the provided fields to a patient record.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var req UpdatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.FullName != "" {
		patient.FullName = req.FullName
	}
	if req.Gender != "" {
		patient.Gender = req.Gender
	}
	if req.Phone != "" {
		patient.Phone = req.Phone
	}
	if req.Birthday != nil {
		patient.Birthday = req.Birthday
	}
	if req.Address != "" {
		patient.Address = req.Address
	}
	if req.Email != "" && req.Email != patient.Email {
		var existing models.Patient
		if err := h.DB.Where("email = ? AND id != ?", req.Email, patient.ID).First(&existing).Error; err == nil {
			utils.UnprocessableEntity(c, "The email has already been taken")
			return
		} else if err != gorm.ErrRecordNotFound {
			utils.InternalServerError(c, "Database error checking email: "+err.Error())
			return
		}
		patient.Email = req.Email
	}
	if req.Password != "" {
		if err := patient.SetPassword(req.Password); err != nil {
			utils.InternalServerError(c, "Failed to hash password: "+err.Error())
			return
		}
	}
	if req.Weight != nil {
		patient.Weight = req.Weight
	}
	if req.Height != nil {
		patient.Height = req.Height
	}

	if err := h.DB.Save(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to update patient: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Patient updated", "patient": patient})
}

// DeletePatient removes a patient record.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete patient: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted"})
}
