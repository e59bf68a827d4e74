package scheduling

import (
	"context"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/platform/apperr"
)

var validStatuses = map[string]bool{
	StatusScheduled: true, StatusCompleted: true, StatusCancelled: true,
}

// PatientSource resolves patient references. Satisfied by identity.PatientRepository.
type PatientSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*identity.Patient, error)
}

// DoctorSource resolves doctor references. Satisfied by identity.DoctorRepository.
type DoctorSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*identity.Doctor, error)
}

type Service struct {
	appointments AppointmentRepository
	patients     PatientSource
	doctors      DoctorSource
}

func NewService(appointments AppointmentRepository, patients PatientSource, doctors DoctorSource) *Service {
	return &Service{appointments: appointments, patients: patients, doctors: doctors}
}

func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return &apperr.ValidationError{Msg: "patient_id is required"}
	}
	if a.DoctorID == uuid.Nil {
		return &apperr.ValidationError{Msg: "doctor_id is required"}
	}
	if a.AppointmentTime.IsZero() {
		return &apperr.ValidationError{Msg: "appointment_time is required"}
	}
	if _, err := s.patients.GetByID(ctx, a.PatientID); err != nil {
		return err
	}
	if _, err := s.doctors.GetByID(ctx, a.DoctorID); err != nil {
		return err
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !validStatuses[a.Status] {
		return &apperr.ValidationError{Msg: "invalid appointment status: " + a.Status}
	}
	return s.appointments.Create(ctx, a)
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) UpdateAppointment(ctx context.Context, a *Appointment) error {
	if a.Status != "" && !validStatuses[a.Status] {
		return &apperr.ValidationError{Msg: "invalid appointment status: " + a.Status}
	}
	return s.appointments.Update(ctx, a)
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.appointments.Delete(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.List(ctx, limit, offset)
}

func (s *Service) ListAppointmentsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListAppointmentsByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByDoctor(ctx, doctorID, limit, offset)
}
