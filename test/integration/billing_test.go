package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/domain/pharmacy"
	"github.com/hms/hms/internal/domain/prescription"
	"github.com/hms/hms/internal/platform/apperr"
)

func newBillingService() (*billing.Service, prescription.PrescriptionRepository, pharmacy.MedicineRepository) {
	patientRepo := identity.NewPatientRepoPG(globalDB.Pool)
	doctorRepo := identity.NewDoctorRepoPG(globalDB.Pool)
	prescriptionRepo := prescription.NewPrescriptionRepoPG(globalDB.Pool)
	medicineRepo := pharmacy.NewMedicineRepoPG(globalDB.Pool)
	billRepo := billing.NewBillRepoPG(globalDB.Pool)
	paymentRepo := billing.NewPaymentRepoPG(globalDB.Pool)
	svc := billing.NewService(billRepo, paymentRepo, patientRepo, doctorRepo, prescriptionRepo, medicineRepo, globalDB.Runner)
	return svc, prescriptionRepo, medicineRepo
}

func TestBillingEngine_EndToEnd(t *testing.T) {
	ctx := context.Background()
	truncateAll(t, ctx)

	svc, prescriptionRepo, medicineRepo := newBillingService()

	doctor := createTestDoctor(t, ctx, 500)
	patient := createTestPatient(t, ctx)
	med := createTestMedicine(t, ctx, "Paracetamol", 100, 20)

	pres := &prescription.Prescription{
		PatientID:        patient.ID,
		DoctorID:         doctor.ID,
		Status:           prescription.StatusPending,
		PrescriptionDate: time.Now(),
		Lines:            []prescription.MedicineLine{{MedicineID: med.ID, Quantity: 2}},
	}
	if err := prescriptionRepo.Create(ctx, pres); err != nil {
		t.Fatalf("create prescription: %v", err)
	}

	bill, err := svc.CreateBill(ctx, patient.ID, nil, nil)
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}
	if bill.Amount != 540 {
		t.Errorf("expected amount 540, got %f", bill.Amount)
	}
	if bill.Status != billing.StatusPending {
		t.Errorf("expected status Pending, got %s", bill.Status)
	}

	got, err := medicineRepo.GetByID(ctx, med.ID)
	if err != nil {
		t.Fatalf("get medicine: %v", err)
	}
	if got.Stock != 98 {
		t.Errorf("expected stock 98 after billing, got %d", got.Stock)
	}

	billed, err := prescriptionRepo.GetByID(ctx, pres.ID)
	if err != nil {
		t.Fatalf("get prescription: %v", err)
	}
	if billed.Status != prescription.StatusBilled {
		t.Errorf("expected prescription Billed, got %s", billed.Status)
	}

	// A second run has no pending prescriptions left, so the bill is empty.
	second, err := svc.CreateBill(ctx, patient.ID, nil, nil)
	if err != nil {
		t.Fatalf("create second bill: %v", err)
	}
	if second.Amount != 0 {
		t.Errorf("expected zero amount on rebill, got %f", second.Amount)
	}
}

func TestBillingEngine_InsufficientStockRollsBack(t *testing.T) {
	ctx := context.Background()
	truncateAll(t, ctx)

	svc, prescriptionRepo, medicineRepo := newBillingService()

	doctor := createTestDoctor(t, ctx, 500)
	patient := createTestPatient(t, ctx)
	ok := createTestMedicine(t, ctx, "Paracetamol", 100, 20)
	short := createTestMedicine(t, ctx, "Insulin", 1, 300)

	pres := &prescription.Prescription{
		PatientID:        patient.ID,
		DoctorID:         doctor.ID,
		Status:           prescription.StatusPending,
		PrescriptionDate: time.Now(),
		Lines: []prescription.MedicineLine{
			{MedicineID: ok.ID, Quantity: 2},
			{MedicineID: short.ID, Quantity: 5},
		},
	}
	if err := prescriptionRepo.Create(ctx, pres); err != nil {
		t.Fatalf("create prescription: %v", err)
	}

	_, err := svc.CreateBill(ctx, patient.ID, nil, nil)
	var stockErr *apperr.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}

	// The transaction rolled back: nothing was deducted or marked billed.
	got, err := medicineRepo.GetByID(ctx, ok.ID)
	if err != nil {
		t.Fatalf("get medicine: %v", err)
	}
	if got.Stock != 100 {
		t.Errorf("expected untouched stock 100, got %d", got.Stock)
	}
	pending, err := prescriptionRepo.GetByID(ctx, pres.ID)
	if err != nil {
		t.Fatalf("get prescription: %v", err)
	}
	if pending.Status != prescription.StatusPending {
		t.Errorf("expected prescription still Pending, got %s", pending.Status)
	}

	var billCount int
	if err := globalDB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM bills`).Scan(&billCount); err != nil {
		t.Fatalf("count bills: %v", err)
	}
	if billCount != 0 {
		t.Errorf("expected no bills after aborted run, got %d", billCount)
	}
}

func TestBillingEngine_PaymentReconciliation(t *testing.T) {
	ctx := context.Background()
	truncateAll(t, ctx)

	svc, prescriptionRepo, _ := newBillingService()

	doctor := createTestDoctor(t, ctx, 500)
	patient := createTestPatient(t, ctx)
	med := createTestMedicine(t, ctx, "Paracetamol", 100, 20)

	pres := &prescription.Prescription{
		PatientID:        patient.ID,
		DoctorID:         doctor.ID,
		Status:           prescription.StatusPending,
		PrescriptionDate: time.Now(),
		Lines:            []prescription.MedicineLine{{MedicineID: med.ID, Quantity: 2}},
	}
	if err := prescriptionRepo.Create(ctx, pres); err != nil {
		t.Fatalf("create prescription: %v", err)
	}

	bill, err := svc.CreateBill(ctx, patient.ID, nil, nil)
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}

	if _, err := svc.RecordPayment(ctx, bill.ID, 200, "cash", nil); err != nil {
		t.Fatalf("record first payment: %v", err)
	}
	partial, err := svc.GetBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("get bill: %v", err)
	}
	if partial.PaidAmount != 200 || partial.Status != billing.StatusPartial {
		t.Errorf("expected paid 200 / Partial, got %f / %s", partial.PaidAmount, partial.Status)
	}

	if _, err := svc.RecordPayment(ctx, bill.ID, 340, "card", nil); err != nil {
		t.Fatalf("record second payment: %v", err)
	}
	paid, err := svc.GetBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("get bill: %v", err)
	}
	if paid.PaidAmount != 540 || paid.Status != billing.StatusPaid {
		t.Errorf("expected paid 540 / Paid, got %f / %s", paid.PaidAmount, paid.Status)
	}

	payments, total, err := svc.ListPaymentsByBill(ctx, bill.ID, 20, 0)
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if total != 2 || len(payments) != 2 {
		t.Errorf("expected 2 payments, got total=%d len=%d", total, len(payments))
	}
}
