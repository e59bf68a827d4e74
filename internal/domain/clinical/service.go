package clinical

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/platform/apperr"
)

// PatientSource resolves patient references. Satisfied by identity.PatientRepository.
type PatientSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*identity.Patient, error)
}

// DoctorSource resolves doctor references. Satisfied by identity.DoctorRepository.
type DoctorSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*identity.Doctor, error)
}

type Service struct {
	records  MedicalRecordRepository
	patients PatientSource
	doctors  DoctorSource
}

func NewService(records MedicalRecordRepository, patients PatientSource, doctors DoctorSource) *Service {
	return &Service{records: records, patients: patients, doctors: doctors}
}

func (s *Service) CreateRecord(ctx context.Context, rec *MedicalRecord) error {
	if rec.PatientID == uuid.Nil {
		return &apperr.ValidationError{Msg: "patient_id is required"}
	}
	if rec.DoctorID == uuid.Nil {
		return &apperr.ValidationError{Msg: "doctor_id is required"}
	}
	if rec.Diagnosis == "" {
		return &apperr.ValidationError{Msg: "diagnosis is required"}
	}
	if _, err := s.patients.GetByID(ctx, rec.PatientID); err != nil {
		return err
	}
	if _, err := s.doctors.GetByID(ctx, rec.DoctorID); err != nil {
		return err
	}
	if rec.RecordDate.IsZero() {
		rec.RecordDate = time.Now()
	}
	return s.records.Create(ctx, rec)
}

func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	return s.records.GetByID(ctx, id)
}

func (s *Service) UpdateRecord(ctx context.Context, rec *MedicalRecord) error {
	if rec.Diagnosis == "" {
		return &apperr.ValidationError{Msg: "diagnosis is required"}
	}
	return s.records.Update(ctx, rec)
}

func (s *Service) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	return s.records.Delete(ctx, id)
}

func (s *Service) ListRecords(ctx context.Context, limit, offset int) ([]*MedicalRecord, int, error) {
	return s.records.List(ctx, limit, offset)
}

func (s *Service) ListRecordsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error) {
	return s.records.ListByPatient(ctx, patientID, limit, offset)
}
