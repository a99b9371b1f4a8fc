package models

import (
	"time"
)

// Patient represents a patient record
type Patient struct {
	BaseModel
	Account
	FullName string     `gorm:"size:255;not null" json:"full_name"`
	Gender   string     `gorm:"size:10" json:"gender"`
	Phone    string     `gorm:"size:20" json:"phone"`
	Birthday *time.Time `json:"birthday,omitempty"`
	Address  string     `gorm:"size:255" json:"address,omitempty"`
	Weight   *int       `json:"weight,omitempty"`
	Height   *float64   `json:"height,omitempty"`

	// Relations (not always preloaded)
	Appointments  []Appointment  `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	Consultations []Consultation `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	Prescriptions []Prescription `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}
