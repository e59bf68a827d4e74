package clinical

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord maps to the medical_records table.
type MedicalRecord struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID   uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Diagnosis  string    `db:"diagnosis" json:"diagnosis"`
	Treatment  *string   `db:"treatment" json:"treatment,omitempty"`
	RecordDate time.Time `db:"record_date" json:"record_date"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
