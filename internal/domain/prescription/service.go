package prescription

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/domain/pharmacy"
	"github.com/hms/hms/internal/platform/apperr"
)

var validStatuses = map[string]bool{
	StatusPending: true, StatusBilled: true,
}

// PatientSource resolves patient references. Satisfied by identity.PatientRepository.
type PatientSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*identity.Patient, error)
}

// DoctorSource resolves doctor references. Satisfied by identity.DoctorRepository.
type DoctorSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*identity.Doctor, error)
}

// MedicineSource resolves medicine references. Satisfied by pharmacy.MedicineRepository.
type MedicineSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*pharmacy.Medicine, error)
}

type Service struct {
	prescriptions PrescriptionRepository
	patients      PatientSource
	doctors       DoctorSource
	medicines     MedicineSource
}

func NewService(prescriptions PrescriptionRepository, patients PatientSource, doctors DoctorSource, medicines MedicineSource) *Service {
	return &Service{prescriptions: prescriptions, patients: patients, doctors: doctors, medicines: medicines}
}

func (s *Service) CreatePrescription(ctx context.Context, p *Prescription) error {
	if p.PatientID == uuid.Nil {
		return &apperr.ValidationError{Msg: "patient_id is required"}
	}
	if p.DoctorID == uuid.Nil {
		return &apperr.ValidationError{Msg: "doctor_id is required"}
	}
	if _, err := s.patients.GetByID(ctx, p.PatientID); err != nil {
		return err
	}
	if _, err := s.doctors.GetByID(ctx, p.DoctorID); err != nil {
		return err
	}
	for _, line := range p.Lines {
		if line.Quantity <= 0 {
			return &apperr.ValidationError{Msg: "line quantity must be positive"}
		}
		if _, err := s.medicines.GetByID(ctx, line.MedicineID); err != nil {
			return err
		}
	}
	if p.PrescriptionDate.IsZero() {
		p.PrescriptionDate = time.Now()
	}
	if p.Status == "" {
		p.Status = StatusPending
	}
	if !validStatuses[p.Status] {
		return &apperr.ValidationError{Msg: "invalid prescription status: " + p.Status}
	}
	return s.prescriptions.Create(ctx, p)
}

func (s *Service) GetPrescription(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.prescriptions.GetByID(ctx, id)
}

func (s *Service) UpdatePrescription(ctx context.Context, p *Prescription) error {
	if p.Status != "" && !validStatuses[p.Status] {
		return &apperr.ValidationError{Msg: "invalid prescription status: " + p.Status}
	}
	return s.prescriptions.Update(ctx, p)
}

func (s *Service) DeletePrescription(ctx context.Context, id uuid.UUID) error {
	p, err := s.prescriptions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Status == StatusBilled {
		return &apperr.ValidationError{Msg: "billed prescriptions cannot be deleted"}
	}
	return s.prescriptions.Delete(ctx, id)
}

func (s *Service) ListPrescriptions(ctx context.Context, limit, offset int) ([]*Prescription, int, error) {
	return s.prescriptions.List(ctx, limit, offset)
}

func (s *Service) ListPrescriptionsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	return s.prescriptions.ListByPatient(ctx, patientID, limit, offset)
}

// AddLine appends a medicine line to a pending prescription.
func (s *Service) AddLine(ctx context.Context, prescriptionID, medicineID uuid.UUID, quantity int) (*MedicineLine, error) {
	if quantity <= 0 {
		return nil, &apperr.ValidationError{Msg: "quantity must be positive"}
	}
	p, err := s.prescriptions.GetByID(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusPending {
		return nil, &apperr.ValidationError{Msg: "lines can only be added to pending prescriptions"}
	}
	if _, err := s.medicines.GetByID(ctx, medicineID); err != nil {
		return nil, err
	}
	line := &MedicineLine{PrescriptionID: prescriptionID, MedicineID: medicineID, Quantity: quantity}
	if err := s.prescriptions.AddLine(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *Service) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	return s.prescriptions.DeleteLine(ctx, lineID)
}
