// Package service orchestrates the registration workflow: validate, check for
// duplicates, persist, then dispatch best-effort notifications. Persistence is
// the durability boundary; everything after it can fail without failing the
// request.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"supplierintake/internal/notify"
	"supplierintake/internal/platform/metrics"
	"supplierintake/internal/registration/models"
	"supplierintake/internal/registration/store"
	"supplierintake/internal/registration/validate"
	dErrors "supplierintake/pkg/errors"
	"supplierintake/pkg/platform/sentinel"
)

// Notifier is what the workflow needs from the notification dispatcher.
type Notifier interface {
	SendConfirmation(ctx context.Context, reg *models.SupplierRegistration) notify.Result
	SendAdminAlert(ctx context.Context, reg *models.SupplierRegistration) notify.Result
}

// Outcome is the result of a persisted registration: the stored entity plus
// the notification status the handler echoes back to the client.
type Outcome struct {
	Registration *models.SupplierRegistration
	EmailStatus  models.EmailStatus
}

// Service runs the registration workflow.
type Service struct {
	validator *validate.Validator
	suppliers store.SupplierStore
	notifier  Notifier
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics attaches Prometheus counters to workflow outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock injects a clock for deterministic CreatedAt values in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates the registration service.
func New(validator *validate.Validator, suppliers store.SupplierStore, notifier Notifier, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		validator: validator,
		suppliers: suppliers,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register processes one submission. The returned error is always a coded
// domain error; on success the Outcome reports which notifications went out.
func (s *Service) Register(ctx context.Context, req models.SubmissionRequest) (*Outcome, error) {
	if s.metrics != nil {
		start := time.Now()
		defer func() {
			s.metrics.ObserveRequestDuration(time.Since(start))
		}()
	}

	res := s.validator.Validate(req)
	if !res.Valid() {
		s.reject("validation")
		return nil, dErrors.NewWithDetails(dErrors.CodeInvalidInput, "Validation failed", res.Errors)
	}

	// Friendly pre-check; the store's unique constraint is the real guard.
	exists, err := s.suppliers.ExistsByEmail(ctx, res.Sanitized.Email)
	if err != nil {
		s.reject("internal")
		s.logger.ErrorContext(ctx, "duplicate check failed", "error", err.Error())
		return nil, dErrors.Wrap(dErrors.CodeInternal, "duplicate check failed", err)
	}
	if exists {
		s.reject("duplicate")
		return nil, dErrors.New(dErrors.CodeConflict, "Email address already registered")
	}

	reg := res.Sanitized
	reg.ID = uuid.New()
	reg.CreatedAt = s.now().UTC()

	if err := s.suppliers.Insert(ctx, &reg); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// A concurrent submission won the race past the pre-check.
			s.reject("duplicate")
			return nil, dErrors.New(dErrors.CodeConflict, "Email address already registered")
		}
		s.reject("internal")
		s.logger.ErrorContext(ctx, "failed to persist registration", "error", err.Error())
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to persist registration", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementPersisted()
	}
	s.logger.InfoContext(ctx, "supplier registration persisted",
		"id", reg.ID.String(),
		"company", reg.CompanyName,
	)

	status := s.dispatchNotifications(ctx, &reg)

	return &Outcome{Registration: &reg, EmailStatus: status}, nil
}

// dispatchNotifications sends the confirmation and admin alert concurrently
// and waits for both. Outcomes become data; neither can fail the request.
func (s *Service) dispatchNotifications(ctx context.Context, reg *models.SupplierRegistration) models.EmailStatus {
	var confirmation, alert notify.Result

	var g errgroup.Group
	g.Go(func() error {
		confirmation = s.notifier.SendConfirmation(ctx, reg)
		return nil
	})
	g.Go(func() error {
		alert = s.notifier.SendAdminAlert(ctx, reg)
		return nil
	})
	_ = g.Wait()

	if s.metrics != nil {
		s.metrics.RecordNotification("confirmation", confirmation.Success)
		s.metrics.RecordNotification("admin_alert", alert.Success)
	}

	return models.EmailStatus{
		ConfirmationSent: confirmation.Success,
		NotificationSent: alert.Success,
	}
}

func (s *Service) reject(reason string) {
	if s.metrics != nil {
		s.metrics.IncrementRejected(reason)
	}
}
