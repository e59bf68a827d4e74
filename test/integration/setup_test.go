package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/domain/pharmacy"
	"github.com/hms/hms/internal/platform/db"
)

// testDB holds the shared database infrastructure for integration tests.
type testDB struct {
	Pool   *pgxpool.Pool
	Runner *db.Runner
}

// globalDB is the package-level test database, initialized once in TestMain.
var globalDB *testDB

func TestMain(m *testing.M) {
	ctx := context.Background()

	connStr, cleanup, err := startPostgresContainer(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup postgres container: %v\n", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		cleanup()
		fmt.Fprintf(os.Stderr, "failed to create pool: %v\n", err)
		os.Exit(1)
	}

	migrator := db.NewMigrator(pool, findMigrationsDir())
	if _, err := migrator.Up(ctx); err != nil {
		pool.Close()
		cleanup()
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	globalDB = &testDB{Pool: pool, Runner: db.NewRunner(pool)}
	code := m.Run()
	pool.Close()
	cleanup()
	os.Exit(code)
}

// findMigrationsDir locates the migrations directory relative to this test file.
func findMigrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	// test/integration -> repo root
	return filepath.Join(dir, "..", "..", "migrations")
}

// truncateAll wipes every domain table so tests start from a clean slate.
func truncateAll(t *testing.T, ctx context.Context) {
	t.Helper()
	_, err := globalDB.Pool.Exec(ctx, `TRUNCATE payments, bills, prescription_medicines, prescriptions,
		medical_records, appointments, medicines, staff, users, patients, doctors CASCADE`)
	if err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func createTestDoctor(t *testing.T, ctx context.Context, fee float64) *identity.Doctor {
	t.Helper()
	repo := identity.NewDoctorRepoPG(globalDB.Pool)
	d := &identity.Doctor{
		Name:            "Dr. Rao",
		Specialization:  "General Medicine",
		ContactNumber:   "98" + uuid.New().String()[:8],
		Email:           uuid.New().String()[:8] + "@hospital.test",
		ConsultationFee: fee,
	}
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("create test doctor: %v", err)
	}
	return d
}

func createTestPatient(t *testing.T, ctx context.Context) *identity.Patient {
	t.Helper()
	repo := identity.NewPatientRepoPG(globalDB.Pool)
	p := &identity.Patient{
		Name:          "Asha Verma",
		Age:           34,
		Gender:        "female",
		ContactNumber: "9876543210",
		AadharNumber:  uuid.New().String()[:12],
	}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create test patient: %v", err)
	}
	return p
}

func createTestMedicine(t *testing.T, ctx context.Context, name string, stock int, price float64) *pharmacy.Medicine {
	t.Helper()
	repo := pharmacy.NewMedicineRepoPG(globalDB.Pool)
	m := &pharmacy.Medicine{
		Name:              name,
		Stock:             stock,
		Price:             price,
		LowStockThreshold: pharmacy.DefaultLowStockThreshold,
	}
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("create test medicine: %v", err)
	}
	return m
}
