package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplierintake/internal/notify"
	"supplierintake/internal/registration/models"
	"supplierintake/internal/registration/store"
	"supplierintake/internal/registration/validate"
	dErrors "supplierintake/pkg/errors"
	"supplierintake/pkg/platform/sentinel"
)

type stubStore struct {
	exists     bool
	existsErr  error
	insertErr  error
	inserted   []*models.SupplierRegistration
	existsSeen []string
}

func (s *stubStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	s.existsSeen = append(s.existsSeen, email)
	return s.exists, s.existsErr
}

func (s *stubStore) Insert(ctx context.Context, reg *models.SupplierRegistration) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, reg)
	return nil
}

type stubNotifier struct {
	confirmation notify.Result
	alert        notify.Result
	// The dispatcher sends both messages concurrently, so the counter must
	// be safe to bump from two goroutines.
	calls atomic.Int32
}

func (n *stubNotifier) SendConfirmation(ctx context.Context, reg *models.SupplierRegistration) notify.Result {
	n.calls.Add(1)
	return n.confirmation
}

func (n *stubNotifier) SendAdminAlert(ctx context.Context, reg *models.SupplierRegistration) notify.Result {
	n.calls.Add(1)
	return n.alert
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func validSubmission() models.SubmissionRequest {
	return models.SubmissionRequest{
		CompanyName: "Acme Supplies BV",
		Email:       "jan@acme.be",
		VATNumber:   "BE0123456789",
		IBAN:        "BE68 5390 0754 7034",
	}
}

func newService(st store.SupplierStore, n Notifier) *Service {
	return New(validate.New(), st, n, testLogger())
}

func TestRegisterPersistsAndNotifies(t *testing.T) {
	st := &stubStore{}
	n := &stubNotifier{
		confirmation: notify.Result{Success: true},
		alert:        notify.Result{Success: true},
	}
	svc := newService(st, n)

	outcome, err := svc.Register(context.Background(), validSubmission())

	require.NoError(t, err)
	require.Len(t, st.inserted, 1)
	assert.Equal(t, "jan@acme.be", st.inserted[0].Email)
	assert.NotZero(t, st.inserted[0].ID)
	assert.True(t, outcome.EmailStatus.ConfirmationSent)
	assert.True(t, outcome.EmailStatus.NotificationSent)
	assert.Equal(t, int32(2), n.calls.Load())
}

func TestRegisterRejectsInvalidSubmission(t *testing.T) {
	st := &stubStore{}
	svc := newService(st, &stubNotifier{})

	_, err := svc.Register(context.Background(), models.SubmissionRequest{})

	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeInvalidInput))

	var de *dErrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []string{
		"Company name is required",
		"Email is required",
		"VAT number is required",
		"IBAN is required",
	}, de.Details)

	assert.Empty(t, st.existsSeen, "no I/O before validation passes")
	assert.Empty(t, st.inserted)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	st := &stubStore{exists: true}
	n := &stubNotifier{}
	svc := newService(st, n)

	req := validSubmission()
	req.Email = "A@B.com" // case must not matter for dedup

	_, err := svc.Register(context.Background(), req)

	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeConflict))
	assert.Equal(t, []string{"a@b.com"}, st.existsSeen, "dedup key is the lower-cased email")
	assert.Empty(t, st.inserted, "insert must not be called for duplicates")
	assert.Zero(t, n.calls.Load(), "no notifications for rejected submissions")
}

func TestRegisterMapsInsertConflictTo409(t *testing.T) {
	// The pre-check passed but a concurrent submission won the race; the
	// store's unique constraint reports it.
	st := &stubStore{insertErr: sentinel.ErrConflict}
	svc := newService(st, &stubNotifier{})

	_, err := svc.Register(context.Background(), validSubmission())

	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeConflict))
}

func TestRegisterFailsOnStoreErrors(t *testing.T) {
	t.Run("duplicate check failure", func(t *testing.T) {
		st := &stubStore{existsErr: errors.New("connection refused")}
		svc := newService(st, &stubNotifier{})

		_, err := svc.Register(context.Background(), validSubmission())
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeInternal))
	})

	t.Run("insert failure", func(t *testing.T) {
		st := &stubStore{insertErr: errors.New("disk full")}
		n := &stubNotifier{}
		svc := newService(st, n)

		_, err := svc.Register(context.Background(), validSubmission())
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeInternal))
		assert.Zero(t, n.calls.Load(), "no notifications when persistence failed")
	})
}

func TestRegisterNotificationFailuresAreNonFatal(t *testing.T) {
	st := &stubStore{}
	n := &stubNotifier{
		confirmation: notify.Result{Err: errors.New("smtp down")},
		alert:        notify.Result{Err: errors.New("smtp down")},
	}
	svc := newService(st, n)

	outcome, err := svc.Register(context.Background(), validSubmission())

	require.NoError(t, err, "a persisted registration is always reported as success")
	require.Len(t, st.inserted, 1)
	assert.False(t, outcome.EmailStatus.ConfirmationSent)
	assert.False(t, outcome.EmailStatus.NotificationSent)
}

func TestRegisterPartialNotificationSuccess(t *testing.T) {
	st := &stubStore{}
	n := &stubNotifier{
		confirmation: notify.Result{Success: true},
		alert:        notify.Result{Err: errors.New("relay rejected")},
	}
	svc := newService(st, n)

	outcome, err := svc.Register(context.Background(), validSubmission())

	require.NoError(t, err)
	assert.True(t, outcome.EmailStatus.ConfirmationSent)
	assert.False(t, outcome.EmailStatus.NotificationSent)
}
