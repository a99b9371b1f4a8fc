package models

import (
	"time"
)

// RefreshToken represents a JWT refresh token in the database.
// OwnerRole plus OwnerID point into the patient, doctor or assistant table.
type RefreshToken struct {
	BaseModel
	OwnerRole Role      `gorm:"size:20;index:idx_token_owner" json:"owner_role"`
	OwnerID   uint      `gorm:"index:idx_token_owner" json:"owner_id"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `gorm:"default:false" json:"is_revoked"`
}
