package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/apperr"
)

type Service struct {
	patients PatientRepository
	doctors  DoctorRepository
}

func NewService(patients PatientRepository, doctors DoctorRepository) *Service {
	return &Service{patients: patients, doctors: doctors}
}

// -- Patient --

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return &apperr.ValidationError{Msg: "name is required"}
	}
	if p.AadharNumber == "" {
		return &apperr.ValidationError{Msg: "aadhar_number is required"}
	}
	if p.Age < 0 {
		return &apperr.ValidationError{Msg: "age must not be negative"}
	}
	if p.AssignedDoctorID != nil {
		if _, err := s.doctors.GetByID(ctx, *p.AssignedDoctorID); err != nil {
			return err
		}
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) GetPatientByAadhar(ctx context.Context, aadhar string) (*Patient, error) {
	return s.patients.GetByAadhar(ctx, aadhar)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return &apperr.ValidationError{Msg: "name is required"}
	}
	if p.Age < 0 {
		return &apperr.ValidationError{Msg: "age must not be negative"}
	}
	if p.AssignedDoctorID != nil {
		if _, err := s.doctors.GetByID(ctx, *p.AssignedDoctorID); err != nil {
			return err
		}
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) ListPatientsByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	return s.patients.ListByDoctor(ctx, doctorID, limit, offset)
}

// -- Doctor --

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return &apperr.ValidationError{Msg: "name is required"}
	}
	if d.ContactNumber == "" {
		return &apperr.ValidationError{Msg: "contact_number is required"}
	}
	if d.Email == "" {
		return &apperr.ValidationError{Msg: "email is required"}
	}
	if d.ConsultationFee < 0 {
		return &apperr.ValidationError{Msg: "consultation_fee must not be negative"}
	}
	if d.ConsultationFee == 0 {
		d.ConsultationFee = DefaultConsultationFee
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return &apperr.ValidationError{Msg: "name is required"}
	}
	if d.ConsultationFee < 0 {
		return &apperr.ValidationError{Msg: "consultation_fee must not be negative"}
	}
	return s.doctors.Update(ctx, d)
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}

func (s *Service) ListDoctorsBySpecialization(ctx context.Context, specialization string, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.ListBySpecialization(ctx, specialization, limit, offset)
}
