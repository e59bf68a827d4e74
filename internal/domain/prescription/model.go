package prescription

import (
	"time"

	"github.com/google/uuid"
)

// Prescription statuses.
const (
	StatusPending = "Pending"
	StatusBilled  = "Billed"
)

// Prescription maps to the prescriptions table.
type Prescription struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	PatientID        uuid.UUID      `db:"patient_id" json:"patient_id"`
	DoctorID         uuid.UUID      `db:"doctor_id" json:"doctor_id"`
	PrescriptionDate time.Time      `db:"prescription_date" json:"prescription_date"`
	Instructions     *string        `db:"instructions" json:"instructions,omitempty"`
	Status           string         `db:"status" json:"status"`
	Lines            []MedicineLine `json:"medicines,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// MedicineLine maps to the prescription_medicines table.
type MedicineLine struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PrescriptionID uuid.UUID `db:"prescription_id" json:"prescription_id"`
	MedicineID     uuid.UUID `db:"medicine_id" json:"medicine_id"`
	Quantity       int       `db:"quantity" json:"quantity"`
}
