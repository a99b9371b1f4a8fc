package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a scheduled visit for a patient.
// PatientID is fixed at creation; only time and status ever change.
type Appointment struct {
	BaseModel
	PatientID   uint              `gorm:"index;not null" json:"patient_id"`
	Time        time.Time         `json:"time"`
	Status      AppointmentStatus `gorm:"size:20;default:'scheduled'" json:"status"`
	CreatedDate string            `gorm:"type:date" json:"created_date"`

	// Relations
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}
