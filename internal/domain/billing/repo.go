package billing

import (
	"context"

	"github.com/google/uuid"
)

type BillRepository interface {
	Create(ctx context.Context, b *Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	// GetForUpdate loads a bill row with a row lock. Only meaningful inside
	// a transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*Bill, error)
	// Update writes the caller-editable fields (due date and status).
	Update(ctx context.Context, b *Bill) error
	// UpdateTotals writes the reconciler-owned fields.
	UpdateTotals(ctx context.Context, id uuid.UUID, paidAmount float64, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Bill, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Bill, int, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	List(ctx context.Context, limit, offset int) ([]*Payment, int, error)
	ListByBill(ctx context.Context, billID uuid.UUID, limit, offset int) ([]*Payment, int, error)
}
