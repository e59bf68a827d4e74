package pharmacy

import (
	"context"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/apperr"
)

type Service struct {
	medicines    MedicineRepository
	expiryWindow int
}

func NewService(medicines MedicineRepository) *Service {
	return &Service{medicines: medicines, expiryWindow: DefaultExpiryWindowDays}
}

// SetExpiryWindow overrides the default expiry lookahead window in days.
// Values of zero or less keep the default.
func (s *Service) SetExpiryWindow(days int) {
	if days > 0 {
		s.expiryWindow = days
	}
}

func (s *Service) CreateMedicine(ctx context.Context, m *Medicine) error {
	if m.Name == "" {
		return &apperr.ValidationError{Msg: "name is required"}
	}
	if m.Stock < 0 {
		return &apperr.ValidationError{Msg: "stock must not be negative"}
	}
	if m.Price < 0 {
		return &apperr.ValidationError{Msg: "price must not be negative"}
	}
	if m.LowStockThreshold == 0 {
		m.LowStockThreshold = DefaultLowStockThreshold
	}
	return s.medicines.Create(ctx, m)
}

func (s *Service) GetMedicine(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return s.medicines.GetByID(ctx, id)
}

func (s *Service) GetMedicineByName(ctx context.Context, name string) (*Medicine, error) {
	return s.medicines.GetByName(ctx, name)
}

func (s *Service) UpdateMedicine(ctx context.Context, m *Medicine) error {
	if m.Name == "" {
		return &apperr.ValidationError{Msg: "name is required"}
	}
	if m.Stock < 0 {
		return &apperr.ValidationError{Msg: "stock must not be negative"}
	}
	if m.Price < 0 {
		return &apperr.ValidationError{Msg: "price must not be negative"}
	}
	return s.medicines.Update(ctx, m)
}

func (s *Service) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	return s.medicines.Delete(ctx, id)
}

func (s *Service) ListMedicines(ctx context.Context, limit, offset int) ([]*Medicine, int, error) {
	return s.medicines.List(ctx, limit, offset)
}

// CheckAvailable verifies that the medicine has at least qty units on hand.
func (s *Service) CheckAvailable(ctx context.Context, id uuid.UUID, qty int) error {
	if qty <= 0 {
		return &apperr.ValidationError{Msg: "quantity must be positive"}
	}
	m, err := s.medicines.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.Stock < qty {
		return &apperr.InsufficientStockError{Medicine: m.Name, Available: m.Stock, Required: qty}
	}
	return nil
}

// Restock adds qty units to the medicine's stock.
func (s *Service) Restock(ctx context.Context, id uuid.UUID, qty int) (*Medicine, error) {
	if qty <= 0 {
		return nil, &apperr.ValidationError{Msg: "quantity must be positive"}
	}
	m, err := s.medicines.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Stock += qty
	if err := s.medicines.UpdateStock(ctx, id, m.Stock); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ListLowStock(ctx context.Context, limit, offset int) ([]*Medicine, int, error) {
	return s.medicines.ListLowStock(ctx, limit, offset)
}

func (s *Service) ListExpiringSoon(ctx context.Context, windowDays, limit, offset int) ([]*Medicine, int, error) {
	if windowDays <= 0 {
		windowDays = s.expiryWindow
	}
	return s.medicines.ListExpiringSoon(ctx, windowDays, limit, offset)
}

func (s *Service) ListByBatch(ctx context.Context, batchNumber string, limit, offset int) ([]*Medicine, int, error) {
	if batchNumber == "" {
		return nil, 0, &apperr.ValidationError{Msg: "batch_number is required"}
	}
	return s.medicines.ListByBatch(ctx, batchNumber, limit, offset)
}
