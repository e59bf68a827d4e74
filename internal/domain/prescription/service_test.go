package prescription

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/domain/pharmacy"
	"github.com/hms/hms/internal/platform/apperr"
)

type mockPrescriptionRepo struct {
	prescriptions map[uuid.UUID]*Prescription
}

func newMockPrescriptionRepo() *mockPrescriptionRepo {
	return &mockPrescriptionRepo{prescriptions: make(map[uuid.UUID]*Prescription)}
}

func (m *mockPrescriptionRepo) Create(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()
	for i := range p.Lines {
		p.Lines[i].ID = uuid.New()
		p.Lines[i].PrescriptionID = p.ID
	}
	m.prescriptions[p.ID] = p
	return nil
}

func (m *mockPrescriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	p, ok := m.prescriptions[id]
	if !ok {
		return nil, &apperr.NotFoundError{Resource: "prescription"}
	}
	return p, nil
}

func (m *mockPrescriptionRepo) Update(ctx context.Context, p *Prescription) error {
	if _, ok := m.prescriptions[p.ID]; !ok {
		return &apperr.NotFoundError{Resource: "prescription"}
	}
	m.prescriptions[p.ID] = p
	return nil
}

func (m *mockPrescriptionRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	p, ok := m.prescriptions[id]
	if !ok {
		return &apperr.NotFoundError{Resource: "prescription"}
	}
	p.Status = status
	return nil
}

func (m *mockPrescriptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.prescriptions[id]; !ok {
		return &apperr.NotFoundError{Resource: "prescription"}
	}
	delete(m.prescriptions, id)
	return nil
}

func (m *mockPrescriptionRepo) List(ctx context.Context, limit, offset int) ([]*Prescription, int, error) {
	var items []*Prescription
	for _, p := range m.prescriptions {
		items = append(items, p)
	}
	return items, len(items), nil
}

func (m *mockPrescriptionRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	var items []*Prescription
	for _, p := range m.prescriptions {
		if p.PatientID == patientID {
			items = append(items, p)
		}
	}
	return items, len(items), nil
}

func (m *mockPrescriptionRepo) ListByPatientAndStatus(ctx context.Context, patientID uuid.UUID, status string) ([]*Prescription, error) {
	var items []*Prescription
	for _, p := range m.prescriptions {
		if p.PatientID == patientID && p.Status == status {
			items = append(items, p)
		}
	}
	return items, nil
}

func (m *mockPrescriptionRepo) Lines(ctx context.Context, prescriptionID uuid.UUID) ([]MedicineLine, error) {
	p, ok := m.prescriptions[prescriptionID]
	if !ok {
		return nil, &apperr.NotFoundError{Resource: "prescription"}
	}
	return p.Lines, nil
}

func (m *mockPrescriptionRepo) AddLine(ctx context.Context, line *MedicineLine) error {
	p, ok := m.prescriptions[line.PrescriptionID]
	if !ok {
		return &apperr.NotFoundError{Resource: "prescription"}
	}
	line.ID = uuid.New()
	p.Lines = append(p.Lines, *line)
	return nil
}

func (m *mockPrescriptionRepo) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	for _, p := range m.prescriptions {
		for i, l := range p.Lines {
			if l.ID == lineID {
				p.Lines = append(p.Lines[:i], p.Lines[i+1:]...)
				return nil
			}
		}
	}
	return &apperr.NotFoundError{Resource: "prescription line"}
}

type stubPatientSource struct{ id uuid.UUID }

func (s *stubPatientSource) GetByID(ctx context.Context, id uuid.UUID) (*identity.Patient, error) {
	if id != s.id {
		return nil, &apperr.NotFoundError{Resource: "patient"}
	}
	return &identity.Patient{ID: id}, nil
}

type stubDoctorSource struct{ id uuid.UUID }

func (s *stubDoctorSource) GetByID(ctx context.Context, id uuid.UUID) (*identity.Doctor, error) {
	if id != s.id {
		return nil, &apperr.NotFoundError{Resource: "doctor"}
	}
	return &identity.Doctor{ID: id}, nil
}

type stubMedicineSource struct{ id uuid.UUID }

func (s *stubMedicineSource) GetByID(ctx context.Context, id uuid.UUID) (*pharmacy.Medicine, error) {
	if id != s.id {
		return nil, &apperr.NotFoundError{Resource: "medicine"}
	}
	return &pharmacy.Medicine{ID: id, Name: "Paracetamol", Stock: 100, Price: 2.5}, nil
}

type testFixture struct {
	svc        *Service
	patientID  uuid.UUID
	doctorID   uuid.UUID
	medicineID uuid.UUID
}

func newTestFixture() *testFixture {
	f := &testFixture{
		patientID:  uuid.New(),
		doctorID:   uuid.New(),
		medicineID: uuid.New(),
	}
	f.svc = NewService(
		newMockPrescriptionRepo(),
		&stubPatientSource{id: f.patientID},
		&stubDoctorSource{id: f.doctorID},
		&stubMedicineSource{id: f.medicineID},
	)
	return f
}

func TestCreatePrescription(t *testing.T) {
	f := newTestFixture()

	p := &Prescription{
		PatientID: f.patientID,
		DoctorID:  f.doctorID,
		Lines:     []MedicineLine{{MedicineID: f.medicineID, Quantity: 2}},
	}
	if err := f.svc.CreatePrescription(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != StatusPending {
		t.Errorf("expected default status %q, got %q", StatusPending, p.Status)
	}
	if p.PrescriptionDate.IsZero() {
		t.Error("expected prescription date to default to now")
	}
}

func TestCreatePrescription_UnknownMedicine(t *testing.T) {
	f := newTestFixture()

	p := &Prescription{
		PatientID: f.patientID,
		DoctorID:  f.doctorID,
		Lines:     []MedicineLine{{MedicineID: uuid.New(), Quantity: 2}},
	}
	if err := f.svc.CreatePrescription(context.Background(), p); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCreatePrescription_ZeroQuantityLine(t *testing.T) {
	f := newTestFixture()

	p := &Prescription{
		PatientID: f.patientID,
		DoctorID:  f.doctorID,
		Lines:     []MedicineLine{{MedicineID: f.medicineID, Quantity: 0}},
	}
	if err := f.svc.CreatePrescription(context.Background(), p); err == nil {
		t.Fatal("expected validation error for zero quantity")
	}
}

func TestAddLine_OnlyPending(t *testing.T) {
	f := newTestFixture()

	p := &Prescription{PatientID: f.patientID, DoctorID: f.doctorID}
	if err := f.svc.CreatePrescription(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.svc.AddLine(context.Background(), p.ID, f.medicineID, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.Status = StatusBilled
	if err := f.svc.UpdatePrescription(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.AddLine(context.Background(), p.ID, f.medicineID, 1); err == nil {
		t.Fatal("expected error adding a line to a billed prescription")
	}
}

func TestDeletePrescription_BilledRejected(t *testing.T) {
	f := newTestFixture()

	p := &Prescription{PatientID: f.patientID, DoctorID: f.doctorID, Status: StatusBilled}
	if err := f.svc.CreatePrescription(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.svc.DeletePrescription(context.Background(), p.ID); err == nil {
		t.Fatal("expected error deleting a billed prescription")
	}
}

func TestUpdatePrescription_InvalidStatus(t *testing.T) {
	f := newTestFixture()

	p := &Prescription{PatientID: f.patientID, DoctorID: f.doctorID}
	if err := f.svc.CreatePrescription(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Status = "Dispensed"
	if err := f.svc.UpdatePrescription(context.Background(), p); err == nil {
		t.Fatal("expected validation error for invalid status")
	}
}
