package models

import (
	"time"
)

// Assistant represents an assistant record. Assistants are provisioned
// by doctors and never self-register.
type Assistant struct {
	BaseModel
	Account
	FullName string     `gorm:"size:255;not null" json:"full_name"`
	Phone    string     `gorm:"size:20" json:"phone"`
	Birthday *time.Time `json:"birthday,omitempty"`
	Address  string     `gorm:"size:255" json:"address,omitempty"`
}
