//go:build integration

package containers

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const suppliersSchema = `
CREATE TABLE IF NOT EXISTS suppliers (
    id             UUID PRIMARY KEY,
    company_name   VARCHAR(255) NOT NULL,
    contact_person VARCHAR(255),
    email          VARCHAR(255) NOT NULL,
    phone          VARCHAR(50),
    address        VARCHAR(500),
    city           VARCHAR(100),
    postal_code    VARCHAR(20),
    country        VARCHAR(50),
    vat_number     VARCHAR(20),
    iban           VARCHAR(34) NOT NULL,
    bic            VARCHAR(11),
    bank_name      VARCHAR(255),
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS suppliers_email_key ON suppliers (lower(email));
`

// PostgresContainer wraps a testcontainers PostgreSQL instance with the
// suppliers schema applied.
type PostgresContainer struct {
	Container testcontainers.Container
	DB        *sql.DB
}

// NewPostgresContainer starts a PostgreSQL container, opens a lib/pq
// connection, and bootstraps the schema. Cleanup is registered on t.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("suppliers"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres connection: %v", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to ping postgres: %v", err)
	}

	if _, err := db.ExecContext(ctx, suppliersSchema); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply suppliers schema: %v", err)
	}

	pc := &PostgresContainer{Container: container, DB: db}
	t.Cleanup(func() {
		_ = db.Close()
		_ = container.Terminate(context.Background())
	})
	return pc
}

// TruncateSuppliers clears the suppliers table between tests.
func (p *PostgresContainer) TruncateSuppliers(ctx context.Context) error {
	_, err := p.DB.ExecContext(ctx, `TRUNCATE TABLE suppliers`)
	return err
}
