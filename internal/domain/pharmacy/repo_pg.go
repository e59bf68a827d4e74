package pharmacy

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/apperr"
	"github.com/hms/hms/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type medicineRepoPG struct{ pool *pgxpool.Pool }

func NewMedicineRepoPG(pool *pgxpool.Pool) MedicineRepository { return &medicineRepoPG{pool: pool} }

func (r *medicineRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const medicineCols = `id, name, description, stock, price, expiry_date, batch_number,
	manufacture_date, low_stock_threshold, category, supplier, created_at, updated_at`

func (r *medicineRepoPG) scanMedicine(row pgx.Row) (*Medicine, error) {
	var m Medicine
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Stock, &m.Price, &m.ExpiryDate, &m.BatchNumber,
		&m.ManufactureDate, &m.LowStockThreshold, &m.Category, &m.Supplier, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &apperr.NotFoundError{Resource: "medicine"}
	}
	return &m, err
}

func (r *medicineRepoPG) Create(ctx context.Context, m *Medicine) error {
	m.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medicines (id, name, description, stock, price, expiry_date, batch_number,
			manufacture_date, low_stock_threshold, category, supplier)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		m.ID, m.Name, m.Description, m.Stock, m.Price, m.ExpiryDate, m.BatchNumber,
		m.ManufactureDate, m.LowStockThreshold, m.Category, m.Supplier)
	if db.IsUniqueViolation(err) {
		return &apperr.ConflictError{Resource: "medicine", Detail: "medicine with this name already exists"}
	}
	return err
}

func (r *medicineRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return r.scanMedicine(r.conn(ctx).QueryRow(ctx, `SELECT `+medicineCols+` FROM medicines WHERE id = $1`, id))
}

func (r *medicineRepoPG) GetByName(ctx context.Context, name string) (*Medicine, error) {
	return r.scanMedicine(r.conn(ctx).QueryRow(ctx, `SELECT `+medicineCols+` FROM medicines WHERE name = $1`, name))
}

func (r *medicineRepoPG) GetForUpdate(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return r.scanMedicine(r.conn(ctx).QueryRow(ctx, `SELECT `+medicineCols+` FROM medicines WHERE id = $1 FOR UPDATE`, id))
}

func (r *medicineRepoPG) Update(ctx context.Context, m *Medicine) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE medicines SET name=$2, description=$3, stock=$4, price=$5, expiry_date=$6,
			batch_number=$7, manufacture_date=$8, low_stock_threshold=$9, category=$10,
			supplier=$11, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Name, m.Description, m.Stock, m.Price, m.ExpiryDate,
		m.BatchNumber, m.ManufactureDate, m.LowStockThreshold, m.Category, m.Supplier)
	if db.IsUniqueViolation(err) {
		return &apperr.ConflictError{Resource: "medicine", Detail: "medicine with this name already exists"}
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &apperr.NotFoundError{Resource: "medicine"}
	}
	return nil
}

func (r *medicineRepoPG) UpdateStock(ctx context.Context, id uuid.UUID, stock int) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE medicines SET stock=$2, updated_at=NOW() WHERE id = $1`, id, stock)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &apperr.NotFoundError{Resource: "medicine"}
	}
	return nil
}

func (r *medicineRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &apperr.NotFoundError{Resource: "medicine"}
	}
	return nil
}

func (r *medicineRepoPG) List(ctx context.Context, limit, offset int) ([]*Medicine, int, error) {
	return r.listWhere(ctx, ``, nil, limit, offset)
}

func (r *medicineRepoPG) ListLowStock(ctx context.Context, limit, offset int) ([]*Medicine, int, error) {
	return r.listWhere(ctx, `WHERE stock <= low_stock_threshold`, nil, limit, offset)
}

func (r *medicineRepoPG) ListExpiringSoon(ctx context.Context, windowDays, limit, offset int) ([]*Medicine, int, error) {
	return r.listWhere(ctx, `WHERE expiry_date IS NOT NULL AND expiry_date <= NOW() + make_interval(days => $1)`,
		[]interface{}{windowDays}, limit, offset)
}

func (r *medicineRepoPG) ListByBatch(ctx context.Context, batchNumber string, limit, offset int) ([]*Medicine, int, error) {
	return r.listWhere(ctx, `WHERE batch_number = $1`, []interface{}{batchNumber}, limit, offset)
}

func (r *medicineRepoPG) listWhere(ctx context.Context, where string, args []interface{}, limit, offset int) ([]*Medicine, int, error) {
	countSQL := `SELECT COUNT(*) FROM medicines ` + where
	var total int
	if err := r.conn(ctx).QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	dataSQL := fmt.Sprintf(`SELECT %s FROM medicines %s ORDER BY name LIMIT $%d OFFSET $%d`,
		medicineCols, where, n+1, n+2)
	dataArgs := append(append([]interface{}{}, args...), limit, offset)
	rows, err := r.conn(ctx).Query(ctx, dataSQL, dataArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Medicine
	for rows.Next() {
		m, err := r.scanMedicine(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, nil
}
