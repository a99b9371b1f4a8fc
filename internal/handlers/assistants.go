package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// AssistantHandler handles doctor management of assistant records.
type AssistantHandler struct {
	DB *gorm.DB
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(db *gorm.DB) *AssistantHandler {
	return &AssistantHandler{DB: db}
}

// ListAssistants returns every assistant, newest first.
func (h *AssistantHandler) ListAssistants(c *gin.Context) {
	var assistants []models.Assistant
	if err := h.DB.Order("created_at desc").Find(&assistants).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch assistants: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"assistants": assistants})
}

// GetAssistant returns a single assistant by id.
func (h *AssistantHandler) GetAssistant(c *gin.Context) {
	var assistant models.Assistant
	if err := h.DB.First(&assistant, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Assistant not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"assistant": assistant})
}

// CreateAssistantRequest represents the body for provisioning an assistant.
type CreateAssistantRequest struct {
	FullName string     `json:"full_name" binding:"required,max=255"`
	Phone    string     `json:"phone" binding:"required"`
	Birthday *time.Time `json:"birthday"`
	Address  string     `json:"address"`
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=4"`
}

// CreateAssistant provisions an assistant account.
func (h *AssistantHandler) CreateAssistant(c *gin.Context) {
	var req CreateAssistantRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existing models.Assistant
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.UnprocessableEntity(c, "The email has already been taken")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	assistant := models.Assistant{
		FullName: req.FullName,
		Phone:    req.Phone,
		Birthday: req.Birthday,
		Address:  req.Address,
	}
	assistant.Email = req.Email
	if err := assistant.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if err := h.DB.Create(&assistant).Error; err != nil {
		utils.InternalServerError(c, "Failed to create assistant: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Assistant created", "assistant": assistant})
}

// UpdateAssistantRequest represents the body for a partial assistant update.
type UpdateAssistantRequest struct {
	FullName string     `json:"full_name" binding:"omitempty,max=255"`
	Phone    string     `json:"phone"`
	Birthday *time.Time `json:"birthday"`
	Address  string     `json:"address"`
	Email    string     `json:"email" binding:"omitempty,email"`
	Password string     `json:"password" binding:"omitempty,min=4"`
}

// UpdateAssistant applies the provided fields to an assistant record.
func (h *AssistantHandler) UpdateAssistant(c *gin.Context) {
	var assistant models.Assistant
	if err := h.DB.First(&assistant, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Assistant not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var req UpdateAssistantRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.FullName != "" {
		assistant.FullName = req.FullName
	}
	if req.Phone != "" {
		assistant.Phone = req.Phone
	}
	if req.Birthday != nil {
		assistant.Birthday = req.Birthday
	}
	if req.Address != "" {
		assistant.Address = req.Address
	}
	if req.Email != "" && req.Email != assistant.Email {
		var existing models.Assistant
		if err := h.DB.Where("email = ? AND id != ?", req.Email, assistant.ID).First(&existing).Error; err == nil {
			utils.UnprocessableEntity(c, "The email has already been taken")
			return
		} else if err != gorm.ErrRecordNotFound {
			utils.InternalServerError(c, "Database error checking email: "+err.Error())
			return
		}
		assistant.Email = req.Email
	}
	if req.Password != "" {
		if err := assistant.SetPassword(req.Password); err != nil {
			utils.InternalServerError(c, "Failed to hash password: "+err.Error())
			return
		}
	}

	if err := h.DB.Save(&assistant).Error; err != nil {
		utils.InternalServerError(c, "Failed to update assistant: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assistant updated", "assistant": assistant})
}

// DeleteAssistant removes an assistant record.
func (h *AssistantHandler) DeleteAssistant(c *gin.Context) {
	var assistant models.Assistant
	if err := h.DB.First(&assistant, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Assistant not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&assistant).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete assistant: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assistant deleted"})
}
