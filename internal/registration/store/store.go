// Package store persists supplier registrations. The postgres implementation
// is authoritative for email uniqueness; the memory implementation backs unit
// tests and local development.
package store

import (
	"context"

	"supplierintake/internal/registration/models"
)

// SupplierStore is the narrow persistence port the workflow depends on.
// Insert returns sentinel.ErrConflict when the email is already registered;
// the pre-insert ExistsByEmail check only exists for a friendlier error.
type SupplierStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, reg *models.SupplierRegistration) error
}
