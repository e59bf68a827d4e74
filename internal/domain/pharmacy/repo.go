package pharmacy

import (
	"context"

	"github.com/google/uuid"
)

type MedicineRepository interface {
	Create(ctx context.Context, m *Medicine) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error)
	GetByName(ctx context.Context, name string) (*Medicine, error)
	// GetForUpdate loads a medicine row with a row lock. Only meaningful
	// inside a transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*Medicine, error)
	Update(ctx context.Context, m *Medicine) error
	// UpdateStock sets the absolute stock level for a medicine.
	UpdateStock(ctx context.Context, id uuid.UUID, stock int) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Medicine, int, error)
	ListLowStock(ctx context.Context, limit, offset int) ([]*Medicine, int, error)
	ListExpiringSoon(ctx context.Context, windowDays, limit, offset int) ([]*Medicine, int, error)
	ListByBatch(ctx context.Context, batchNumber string, limit, offset int) ([]*Medicine, int, error)
}
