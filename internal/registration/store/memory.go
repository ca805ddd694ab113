package store

import (
	"context"
	"strings"
	"sync"

	"supplierintake/internal/registration/models"
	"supplierintake/pkg/platform/sentinel"
)

// InMemory is a map-backed SupplierStore keyed by lower-cased email.
type InMemory struct {
	mu      sync.RWMutex
	byEmail map[string]*models.SupplierRegistration
}

// NewInMemory creates an empty in-memory supplier store.
func NewInMemory() *InMemory {
	return &InMemory{byEmail: make(map[string]*models.SupplierRegistration)}
}

func (s *InMemory) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[strings.ToLower(email)]
	return ok, nil
}

// Insert stores a copy so callers cannot mutate persisted state afterwards.
func (s *InMemory) Insert(ctx context.Context, reg *models.SupplierRegistration) error {
	key := strings.ToLower(reg.Email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[key]; ok {
		return sentinel.ErrConflict
	}
	copied := *reg
	s.byEmail[key] = &copied
	return nil
}

// Count reports how many registrations are stored. Test helper.
func (s *InMemory) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEmail)
}
