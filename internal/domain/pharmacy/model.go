package pharmacy

import (
	"time"

	"github.com/google/uuid"
)

// DefaultLowStockThreshold applies when a medicine is created without one.
const DefaultLowStockThreshold = 10

// DefaultExpiryWindowDays bounds the expiring-soon report when the caller
// gives no window.
const DefaultExpiryWindowDays = 30

// Medicine maps to the medicines table. Stock never goes below zero; all
// deductions happen through UpdateStock inside a billing transaction.
type Medicine struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	Name              string     `db:"name" json:"name"`
	Description       *string    `db:"description" json:"description,omitempty"`
	Stock             int        `db:"stock" json:"stock"`
	Price             float64    `db:"price" json:"price"`
	ExpiryDate        *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`
	BatchNumber       *string    `db:"batch_number" json:"batch_number,omitempty"`
	ManufactureDate   *time.Time `db:"manufacture_date" json:"manufacture_date,omitempty"`
	LowStockThreshold int        `db:"low_stock_threshold" json:"low_stock_threshold"`
	Category          *string    `db:"category" json:"category,omitempty"`
	Supplier          *string    `db:"supplier" json:"supplier,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// IsLowStock reports whether the medicine is at or below its reorder threshold.
func (m *Medicine) IsLowStock() bool {
	return m.Stock <= m.LowStockThreshold
}
