package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/domain/pharmacy"
	"github.com/hms/hms/internal/domain/prescription"
	"github.com/hms/hms/internal/platform/apperr"
	"github.com/hms/hms/internal/platform/metrics"
)

// TxRunner executes a unit of work inside one database transaction.
// Satisfied by db.Runner.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// PatientSource resolves patient references. Satisfied by identity.PatientRepository.
type PatientSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*identity.Patient, error)
}

// DoctorSource resolves doctor references. Satisfied by identity.DoctorRepository.
type DoctorSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*identity.Doctor, error)
}

// PrescriptionStore is the slice of the prescription repository the engine
// needs. Satisfied by prescription.PrescriptionRepository.
type PrescriptionStore interface {
	ListByPatientAndStatus(ctx context.Context, patientID uuid.UUID, status string) ([]*prescription.Prescription, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
}

// MedicineStore is the slice of the medicine repository the engine needs.
// Satisfied by pharmacy.MedicineRepository.
type MedicineStore interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*pharmacy.Medicine, error)
	UpdateStock(ctx context.Context, id uuid.UUID, stock int) error
}

type Service struct {
	bills         BillRepository
	payments      PaymentRepository
	patients      PatientSource
	doctors       DoctorSource
	prescriptions PrescriptionStore
	medicines     MedicineStore
	runner        TxRunner
	metrics       *metrics.Metrics
}

func NewService(bills BillRepository, payments PaymentRepository, patients PatientSource,
	doctors DoctorSource, prescriptions PrescriptionStore, medicines MedicineStore, runner TxRunner) *Service {
	return &Service{
		bills:         bills,
		payments:      payments,
		patients:      patients,
		doctors:       doctors,
		prescriptions: prescriptions,
		medicines:     medicines,
		runner:        runner,
	}
}

// SetMetrics attaches optional Prometheus metrics to the service.
func (s *Service) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// deduction is one medicine's planned stock change across all pending
// prescription lines of a billing run.
type deduction struct {
	medicine *pharmacy.Medicine
	quantity int
}

// CreateBill runs the billing engine for a patient: it gathers all pending
// prescriptions, validates that every required medicine is in stock, deducts
// stock, marks the prescriptions billed, adds each prescription's doctor
// consultation fee, and issues the bill. The whole run is one transaction;
// any failure leaves stock, prescriptions, and bills untouched. A patient
// with no pending prescriptions gets a zero-amount bill. The issue date may
// be supplied for backdated bills and defaults to the time of the run.
func (s *Service) CreateBill(ctx context.Context, patientID uuid.UUID, issueDate, dueDate *time.Time) (*Bill, error) {
	start := time.Now()

	issued := start
	if issueDate != nil {
		issued = *issueDate
	}

	var bill *Bill
	err := s.runner.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.patients.GetByID(ctx, patientID); err != nil {
			return err
		}

		pending, err := s.prescriptions.ListByPatientAndStatus(ctx, patientID, prescription.StatusPending)
		if err != nil {
			return err
		}

		// Phase 1: lock every referenced medicine and build the deduction
		// plan. Quantities for the same medicine accumulate across lines so
		// the stock check covers the run's full demand, not one line at a
		// time.
		plan := make(map[uuid.UUID]*deduction)
		for _, p := range pending {
			for _, line := range p.Lines {
				d, ok := plan[line.MedicineID]
				if !ok {
					m, err := s.medicines.GetForUpdate(ctx, line.MedicineID)
					if err != nil {
						return err
					}
					d = &deduction{medicine: m}
					plan[line.MedicineID] = d
				}
				d.quantity += line.Quantity
			}
		}
		for _, d := range plan {
			if d.medicine.Stock < d.quantity {
				return &apperr.InsufficientStockError{
					Medicine:  d.medicine.Name,
					Available: d.medicine.Stock,
					Required:  d.quantity,
				}
			}
		}

		// Phase 2: apply the plan and price the bill.
		var amount float64
		for _, d := range plan {
			if err := s.medicines.UpdateStock(ctx, d.medicine.ID, d.medicine.Stock-d.quantity); err != nil {
				return err
			}
			amount += d.medicine.Price * float64(d.quantity)
		}
		for _, p := range pending {
			if err := s.prescriptions.SetStatus(ctx, p.ID, prescription.StatusBilled); err != nil {
				return err
			}
			fee := float64(identity.DefaultConsultationFee)
			doctor, err := s.doctors.GetByID(ctx, p.DoctorID)
			if err == nil {
				fee = doctor.ConsultationFee
			} else if !apperr.IsNotFound(err) {
				return err
			}
			amount += fee
		}

		bill = &Bill{
			PatientID:  patientID,
			Amount:     amount,
			PaidAmount: 0,
			IssueDate:  issued,
			DueDate:    dueDate,
			Status:     StatusPending,
		}
		return s.bills.Create(ctx, bill)
	})
	if err != nil {
		if s.metrics != nil && apperr.IsInsufficientStock(err) {
			s.metrics.StockRejections.Inc()
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BillsCreated.Inc()
		s.metrics.AmountBilledTotal.Add(bill.Amount)
		s.metrics.BillingDuration.Observe(time.Since(start).Seconds())
	}
	return bill, nil
}

// RecordPayment applies a payment against a bill and reconciles the bill's
// paid amount and status. Runs in one transaction with the bill row locked.
// Overpayment is accepted; the bill just reports Paid with paid_amount
// above amount.
func (s *Service) RecordPayment(ctx context.Context, billID uuid.UUID, amount float64, method string, notes *string) (*Payment, error) {
	if amount <= 0 {
		return nil, &apperr.ValidationError{Msg: "payment amount must be positive"}
	}
	if method == "" {
		return nil, &apperr.ValidationError{Msg: "payment_method is required"}
	}

	var payment *Payment
	err := s.runner.RunInTx(ctx, func(ctx context.Context) error {
		bill, err := s.bills.GetForUpdate(ctx, billID)
		if err != nil {
			return err
		}

		payment = &Payment{
			BillID:        billID,
			Amount:        amount,
			PaymentMethod: method,
			PaymentDate:   time.Now(),
			Notes:         notes,
		}
		if err := s.payments.Create(ctx, payment); err != nil {
			return err
		}

		paid := bill.PaidAmount + amount
		status := bill.Status
		switch {
		case paid >= bill.Amount:
			status = StatusPaid
		case paid > 0:
			status = StatusPartial
		}
		return s.bills.UpdateTotals(ctx, billID, paid, status)
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PaymentsRecorded.Inc()
	}
	return payment, nil
}

func (s *Service) GetBill(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return s.bills.GetByID(ctx, id)
}

// UpdateBill lets callers adjust the due date and status of a bill. The
// amount and paid amount stay engine-owned.
func (s *Service) UpdateBill(ctx context.Context, id uuid.UUID, dueDate *time.Time, status string) (*Bill, error) {
	bill, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dueDate != nil {
		bill.DueDate = dueDate
	}
	if status != "" {
		if status != StatusPending && status != StatusPartial && status != StatusPaid {
			return nil, &apperr.ValidationError{Msg: "invalid bill status: " + status}
		}
		bill.Status = status
	}
	if err := s.bills.Update(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *Service) DeleteBill(ctx context.Context, id uuid.UUID) error {
	return s.bills.Delete(ctx, id)
}

func (s *Service) ListBills(ctx context.Context, limit, offset int) ([]*Bill, int, error) {
	return s.bills.List(ctx, limit, offset)
}

func (s *Service) ListBillsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Bill, int, error) {
	return s.bills.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return s.payments.GetByID(ctx, id)
}

func (s *Service) ListPayments(ctx context.Context, limit, offset int) ([]*Payment, int, error) {
	return s.payments.List(ctx, limit, offset)
}

func (s *Service) ListPaymentsByBill(ctx context.Context, billID uuid.UUID, limit, offset int) ([]*Payment, int, error) {
	return s.payments.ListByBill(ctx, billID, limit, offset)
}
