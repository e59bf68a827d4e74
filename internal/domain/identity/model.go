package identity

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table.
type Patient struct {
	ID                     uuid.UUID  `db:"id" json:"id"`
	Name                   string     `db:"name" json:"name"`
	Age                    int        `db:"age" json:"age"`
	Gender                 string     `db:"gender" json:"gender"`
	ContactNumber          string     `db:"contact_number" json:"contact_number"`
	Address                *string    `db:"address" json:"address,omitempty"`
	AadharNumber           string     `db:"aadhar_number" json:"aadhar_number"`
	BloodGroup             *string    `db:"blood_group" json:"blood_group,omitempty"`
	DOB                    *time.Time `db:"dob" json:"dob,omitempty"`
	Email                  *string    `db:"email" json:"email,omitempty"`
	EmergencyContactName   *string    `db:"emergency_contact_name" json:"emergency_contact_name,omitempty"`
	EmergencyContactNumber *string    `db:"emergency_contact_number" json:"emergency_contact_number,omitempty"`
	MaritalStatus          *string    `db:"marital_status" json:"marital_status,omitempty"`
	AssignedDoctorID       *uuid.UUID `db:"assigned_doctor_id" json:"assigned_doctor_id,omitempty"`
	CreatedAt              time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time  `db:"updated_at" json:"updated_at"`
}

// DefaultConsultationFee is charged when a doctor has no fee configured.
const DefaultConsultationFee = 500

// Doctor maps to the doctors table.
type Doctor struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Specialization  string    `db:"specialization" json:"specialization"`
	ContactNumber   string    `db:"contact_number" json:"contact_number"`
	Email           string    `db:"email" json:"email"`
	ConsultationFee float64   `db:"consultation_fee" json:"consultation_fee"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
