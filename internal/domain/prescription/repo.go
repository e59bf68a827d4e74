package prescription

import (
	"context"

	"github.com/google/uuid"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	Update(ctx context.Context, p *Prescription) error
	// SetStatus transitions a prescription's status.
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Prescription, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error)
	// ListByPatientAndStatus returns all matching prescriptions with their
	// lines loaded. Unpaginated; the billing engine consumes the full set.
	ListByPatientAndStatus(ctx context.Context, patientID uuid.UUID, status string) ([]*Prescription, error)
	// Lines returns the medicine lines of a prescription.
	Lines(ctx context.Context, prescriptionID uuid.UUID) ([]MedicineLine, error)
	AddLine(ctx context.Context, line *MedicineLine) error
	DeleteLine(ctx context.Context, lineID uuid.UUID) error
}
