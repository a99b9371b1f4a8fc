package models

// Prescription represents medication instructions issued to a patient
type Prescription struct {
	BaseModel
	PatientID   uint   `gorm:"index;not null" json:"patient_id"`
	Content     string `gorm:"type:text;not null" json:"content"`
	CreatedDate string `gorm:"type:date" json:"created_date"`

	// Relations
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}
