package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"supplierintake/internal/registration/models"
	"supplierintake/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) newRegistration(email string) *models.SupplierRegistration {
	return &models.SupplierRegistration{
		ID:          uuid.New(),
		CompanyName: "Acme Supplies BV",
		Email:       email,
		IBAN:        "BE68539007547034",
		VATNumber:   "BE0123456789",
		CreatedAt:   time.Now(),
	}
}

func (s *MemoryStoreSuite) TestInsertAndLookup() {
	reg := s.newRegistration("a@b.com")
	s.Require().NoError(s.store.Insert(s.ctx, reg))

	exists, err := s.store.ExistsByEmail(s.ctx, "a@b.com")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.store.ExistsByEmail(s.ctx, "other@b.com")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *MemoryStoreSuite) TestEmailUniquenessIsCaseInsensitive() {
	s.Require().NoError(s.store.Insert(s.ctx, s.newRegistration("a@b.com")))

	err := s.store.Insert(s.ctx, s.newRegistration("A@B.COM"))
	s.Require().ErrorIs(err, sentinel.ErrConflict)
	s.Equal(1, s.store.Count())

	exists, err := s.store.ExistsByEmail(s.ctx, "A@b.Com")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *MemoryStoreSuite) TestInsertStoresCopy() {
	reg := s.newRegistration("a@b.com")
	s.Require().NoError(s.store.Insert(s.ctx, reg))

	reg.CompanyName = "mutated"

	exists, err := s.store.ExistsByEmail(s.ctx, "a@b.com")
	s.Require().NoError(err)
	s.True(exists)
	s.Equal(1, s.store.Count())
}
