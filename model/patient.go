package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Treatment is the closed set of treatment kinds a patient record may carry.
type Treatment string

const (
	TreatmentMedication  Treatment = "Medication"
	TreatmentSurgery     Treatment = "Surgery"
	TreatmentTherapy     Treatment = "Therapy"
	TreatmentObservation Treatment = "Observation"
)

// Treatments lists every valid treatment value, in declaration order.
func Treatments() []Treatment {
	return []Treatment{TreatmentMedication, TreatmentSurgery, TreatmentTherapy, TreatmentObservation}
}

// Valid reports whether t is one of the known treatments.
func (t Treatment) Valid() bool {
	switch t {
	case TreatmentMedication, TreatmentSurgery, TreatmentTherapy, TreatmentObservation:
		return true
	}
	return false
}

// Patient is a hospital patient record. The composite unique index on
// (name, date_of_birth, doctor_id) is the duplicate key the batch import
// silently skips on.
type Patient struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex:idx_patient_identity" json:"name"`
	DateOfBirth time.Time `gorm:"not null;uniqueIndex:idx_patient_identity" json:"date_of_birth"`
	VisitDate   time.Time `gorm:"not null" json:"visit_date"`
	Diagnosis   string    `gorm:"not null" json:"diagnosis"`
	Treatment   Treatment `gorm:"type:varchar(20);not null" json:"treatment"`
	DoctorID    string    `gorm:"type:varchar(36);index;uniqueIndex:idx_patient_identity" json:"doctorId"`
	Doctor      *Doctor   `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate assigns an opaque ID when none was provided.
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// CreatePatientRequest is the wire shape for creating a patient. Dates arrive
// as ISO-8601 strings and are coerced during validation.
type CreatePatientRequest struct {
	Name        string `json:"name" example:"John Doe"`
	DateOfBirth string `json:"date_of_birth" example:"1990-04-12"`
	VisitDate   string `json:"visit_date" example:"2025-01-15"`
	Diagnosis   string `json:"diagnosis" example:"Seasonal influenza"`
	Treatment   string `json:"treatment" example:"Medication"`
	DoctorID    string `json:"doctorId" example:"b2f7c1e0-9a1d-4f7e-8f31-52b6f0a6d2c4"`
}

// UpdatePatientRequest is the wire shape for a merge-patch update. Pointer
// fields distinguish "not sent" from "sent as zero"; only non-nil fields are
// validated and written.
type UpdatePatientRequest struct {
	Name        *string `json:"name"`
	DateOfBirth *string `json:"date_of_birth"`
	VisitDate   *string `json:"visit_date"`
	Diagnosis   *string `json:"diagnosis"`
	Treatment   *string `json:"treatment"`
	DoctorID    *string `json:"doctorId"`
}

// RegisterRequest is the wire shape for account registration.
type RegisterRequest struct {
	Name     string `json:"name" example:"Alice Smith"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret1"`
}

// LoginRequest is the wire shape for email/password login.
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret1"`
}
