package models

// Consultation represents a doctor's visit notes for a patient
type Consultation struct {
	BaseModel
	PatientID   uint   `gorm:"index;not null" json:"patient_id"`
	Notes       string `gorm:"type:text;not null" json:"notes"`
	CreatedDate string `gorm:"type:date" json:"created_date"`

	// Relations
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}
