package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// AuthHandler handles authentication for all three account types.
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

// LoginRequest represents the request body for login on any role.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// issueTokens generates a token pair and persists the refresh token.
func (h *AuthHandler) issueTokens(c *gin.Context, role models.Role, accountID uint) (string, string, bool) {
	accessToken, refreshTokenString, err := utils.GenerateTokens(role, accountID, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate tokens: "+err.Error())
		return "", "", false
	}

	refreshToken := models.RefreshToken{
		OwnerRole: role,
		OwnerID:   accountID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
		IsRevoked: false,
	}
	if err := h.DB.Create(&refreshToken).Error; err != nil {
		utils.InternalServerError(c, "Failed to store refresh token: "+err.Error())
		return "", "", false
	}

	return accessToken, refreshTokenString, true
}

// PatientRegisterRequest represents the patient self-registration body.
type PatientRegisterRequest struct {
	FullName string     `json:"full_name" binding:"required,max=255"`
	Gender   string     `json:"gender" binding:"required,oneof=male female other"`
	Phone    string     `json:"phone" binding:"required,max=20"`
	Birthday *time.Time `json:"birthday"`
	Address  string     `json:"address" binding:"omitempty,max=255"`
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=4"`
	Weight   *int       `json:"weight"`
	Height   *float64   `json:"height"`
}

// PatientRegister creates a patient account and logs it in.
func (h *AuthHandler) PatientRegister(c *gin.Context) {
	var req PatientRegisterRequest
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

	accessToken, refreshToken, ok := h.issueTokens(c, models.RolePatient, patient.ID)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":         accessToken,
		"refresh_token": refreshToken,
		"patient":       patient,
	})
}

// PatientLogin authenticates a patient by email and password.
func (h *AuthHandler) PatientLogin(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.Where("email = ?", req.Email).First(&patient).Error; err != nil || !patient.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	accessToken, refreshToken, ok := h.issueTokens(c, models.RolePatient, patient.ID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":         accessToken,
		"refresh_token": refreshToken,
		"patient":       patient,
	})
}

// DoctorRegisterRequest represents the doctor registration body.
type DoctorRegisterRequest struct {
	FullName string     `json:"full_name" binding:"required,max=255"`
	Phone    string     `json:"phone" binding:"required,max=20"`
	Birthday *time.Time `json:"birthday"`
	Address  string     `json:"address" binding:"omitempty,max=255"`
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=4"`
}

// DoctorRegister creates a doctor account and logs it in.
func (h *AuthHandler) DoctorRegister(c *gin.Context) {
	var req DoctorRegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existing models.Doctor
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.UnprocessableEntity(c, "The email has already been taken")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	doctor := models.Doctor{
		FullName: req.FullName,
		Phone:    req.Phone,
		Birthday: req.Birthday,
		Address:  req.Address,
	}
	doctor.Email = req.Email
	if err := doctor.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if err := h.DB.Create(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to create doctor: "+err.Error())
		return
	}

	accessToken, refreshToken, ok := h.issueTokens(c, models.RoleDoctor, doctor.ID)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":         accessToken,
		"refresh_token": refreshToken,
		"doctor":        doctor,
	})
}

// DoctorLogin authenticates a doctor by email and password.
func (h *AuthHandler) DoctorLogin(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var doctor models.Doctor
	if err := h.DB.Where("email = ?", req.Email).First(&doctor).Error; err != nil || !doctor.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	accessToken, refreshToken, ok := h.issueTokens(c, models.RoleDoctor, doctor.ID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":         accessToken,
		"refresh_token": refreshToken,
		"doctor":        doctor,
	})
}

// AssistantLogin authenticates an assistant by email and password.
// Assistants have no self-registration; doctors provision them.
func (h *AuthHandler) AssistantLogin(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var assistant models.Assistant
	if err := h.DB.Where("email = ?", req.Email).First(&assistant).Error; err != nil || !assistant.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	accessToken, refreshToken, ok := h.issueTokens(c, models.RoleAssistant, assistant.ID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":         accessToken,
		"refresh_token": refreshToken,
		"assistant":     assistant,
	})
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshToken rotates a refresh token and returns a fresh pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	claims, err := utils.ValidateToken(req.RefreshToken, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token: "+err.Error())
		return
	}

	var storedToken models.RefreshToken
	if err := h.DB.Where("token = ? AND owner_role = ? AND owner_id = ? AND is_revoked = ? AND expires_at > ?",
		req.RefreshToken, claims.Role, claims.AccountID, false, time.Now()).First(&storedToken).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Unauthorized(c, "Refresh token not found, expired, or revoked")
		} else {
			utils.InternalServerError(c, "Database error checking refresh token: "+err.Error())
		}
		return
	}

	// Rotation: the presented token is revoked before a new pair is issued.
	storedToken.IsRevoked = true
	if err := h.DB.Save(&storedToken).Error; err != nil {
		utils.InternalServerError(c, "Failed to revoke refresh token: "+err.Error())
		return
	}

	accessToken, refreshToken, ok := h.issueTokens(c, claims.Role, claims.AccountID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":         accessToken,
		"refresh_token": refreshToken,
	})
}

// LogoutRequest represents the request body for logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Logout revokes the caller's refresh token.
func (h *AuthHandler) Logout(c *gin.Context) {
	identity, exists := middleware.IdentityFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	var req LogoutRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var storedToken models.RefreshToken
	if err := h.DB.Where("token = ? AND owner_role = ? AND owner_id = ? AND is_revoked = ?",
		req.RefreshToken, identity.Role, identity.ID, false).First(&storedToken).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// Token already gone; logout is still a success for the client.
			c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
		} else {
			utils.InternalServerError(c, "Database error during logout: "+err.Error())
		}
		return
	}

	storedToken.IsRevoked = true
	storedToken.ExpiresAt = time.Now()
	if err := h.DB.Save(&storedToken).Error; err != nil {
		utils.InternalServerError(c, "Failed to revoke refresh token: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Profile returns the authenticated account's own record.
func (h *AuthHandler) Profile(c *gin.Context) {
	identity, exists := middleware.IdentityFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	switch identity.Role {
	case models.RolePatient:
		var patient models.Patient
		if err := h.DB.First(&patient, identity.ID).Error; err != nil {
			utils.NotFound(c, "Patient not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"patient": patient})
	case models.RoleDoctor:
		var doctor models.Doctor
		if err := h.DB.First(&doctor, identity.ID).Error; err != nil {
			utils.NotFound(c, "Doctor not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"doctor": doctor})
	case models.RoleAssistant:
		var assistant models.Assistant
		if err := h.DB.First(&assistant, identity.ID).Error; err != nil {
			utils.NotFound(c, "Assistant not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"assistant": assistant})
	default:
		utils.Forbidden(c, "Unknown role")
	}
}
