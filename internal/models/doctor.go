package models

import (
	"time"
)

// Doctor represents a doctor record
type Doctor struct {
	BaseModel
	Account
	FullName string     `gorm:"size:255;not null" json:"full_name"`
	Phone    string     `gorm:"size:20" json:"phone"`
	Birthday *time.Time `json:"birthday,omitempty"`
	Address  string     `gorm:"size:255" json:"address,omitempty"`
}
