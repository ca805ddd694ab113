package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"supplierintake/internal/registration/models"
	"supplierintake/pkg/platform/sentinel"
)

// Schema expected by this store:
//
//	CREATE TABLE suppliers (
//	    id             UUID PRIMARY KEY,
//	    company_name   VARCHAR(255) NOT NULL,
//	    contact_person VARCHAR(255),
//	    email          VARCHAR(255) NOT NULL,
//	    phone          VARCHAR(50),
//	    address        VARCHAR(500),
//	    city           VARCHAR(100),
//	    postal_code    VARCHAR(20),
//	    country        VARCHAR(50),
//	    vat_number     VARCHAR(20),
//	    iban           VARCHAR(34) NOT NULL,
//	    bic            VARCHAR(11),
//	    bank_name      VARCHAR(255),
//	    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE UNIQUE INDEX suppliers_email_key ON suppliers (lower(email));
//
// The unique index is the authoritative duplicate guard; ExistsByEmail is an
// optimization that lets concurrent duplicates still surface as conflicts.

const uniqueViolation = "23505"

// Postgres is the lib/pq backed SupplierStore.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed supplier store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM suppliers WHERE lower(email) = lower($1))`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check supplier email: %w", err)
	}
	return exists, nil
}

func (s *Postgres) Insert(ctx context.Context, reg *models.SupplierRegistration) error {
	query := `
		INSERT INTO suppliers (
			id, company_name, contact_person, email, phone, address,
			city, postal_code, country, vat_number, iban, bic, bank_name, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.db.ExecContext(ctx, query,
		reg.ID,
		reg.CompanyName,
		nullable(reg.ContactPerson),
		reg.Email,
		nullable(reg.Phone),
		nullable(reg.Address),
		nullable(reg.City),
		nullable(reg.PostalCode),
		nullable(reg.Country),
		nullable(reg.VATNumber),
		reg.IBAN,
		nullable(reg.BIC),
		nullable(reg.BankName),
		reg.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// nullable maps empty optional fields to SQL NULL instead of empty strings.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
