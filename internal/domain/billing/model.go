package billing

import (
	"time"

	"github.com/google/uuid"
)

// Bill statuses. A bill starts Pending, moves to Partial once any payment
// lands, and to Paid when payments cover the amount.
const (
	StatusPending = "Pending"
	StatusPartial = "Partial"
	StatusPaid    = "Paid"
)

// Bill maps to the bills table. Amount is derived by the billing engine
// and never supplied by callers.
type Bill struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	PatientID  uuid.UUID  `db:"patient_id" json:"patient_id"`
	Amount     float64    `db:"amount" json:"amount"`
	PaidAmount float64    `db:"paid_amount" json:"paid_amount"`
	IssueDate  time.Time  `db:"issue_date" json:"issue_date"`
	DueDate    *time.Time `db:"due_date" json:"due_date,omitempty"`
	Status     string     `db:"status" json:"status"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// Payment maps to the payments table. Payments are append-only; corrections
// are new rows, never edits.
type Payment struct {
	ID            uuid.UUID `db:"id" json:"id"`
	BillID        uuid.UUID `db:"bill_id" json:"bill_id"`
	Amount        float64   `db:"amount" json:"amount"`
	PaymentMethod string    `db:"payment_method" json:"payment_method"`
	PaymentDate   time.Time `db:"payment_date" json:"payment_date"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
