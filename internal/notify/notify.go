// Package notify sends the best-effort confirmation and admin-alert emails
// that follow a persisted registration. Send failures are reported as data;
// they never fail the request that triggered them.
package notify

import (
	"context"
	"log/slog"

	"supplierintake/internal/registration/models"
	pstrings "supplierintake/pkg/platform/strings"
)

// Message is a single outbound email.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Result records the outcome of one send attempt.
type Result struct {
	Success   bool
	MessageID string
	Err       error
}

// Sender delivers a message. Implementations must be safe for concurrent use;
// the dispatcher sends confirmation and admin alert in parallel.
type Sender interface {
	Send(ctx context.Context, msg Message) Result
}

// Dispatcher builds and sends the two registration emails.
type Dispatcher struct {
	sender     Sender
	adminAddrs []string
	logger     *slog.Logger
}

// NewDispatcher creates a Dispatcher. adminRecipients is the raw
// comma-separated list from configuration; entries are trimmed, lower-cased,
// and deduplicated, empty entries dropped.
func NewDispatcher(sender Sender, adminRecipients string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sender:     sender,
		adminAddrs: pstrings.SplitRecipients(adminRecipients),
		logger:     logger,
	}
}

// AdminRecipients exposes the parsed admin list.
func (d *Dispatcher) AdminRecipients() []string {
	return d.adminAddrs
}

// SendConfirmation emails the supplier that their registration was received.
func (d *Dispatcher) SendConfirmation(ctx context.Context, reg *models.SupplierRegistration) Result {
	msg, err := confirmationMessage(reg)
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to render confirmation email", "error", err.Error())
		return Result{Err: err}
	}

	res := d.sender.Send(ctx, msg)
	if !res.Success {
		d.logger.WarnContext(ctx, "confirmation email failed",
			"email", reg.Email,
			"error", errString(res.Err),
		)
	}
	return res
}

// SendAdminAlert notifies the configured administrators of a new registration.
// With no recipients configured the alert is skipped and reported as failed,
// matching how callers surface notification state.
func (d *Dispatcher) SendAdminAlert(ctx context.Context, reg *models.SupplierRegistration) Result {
	if len(d.adminAddrs) == 0 {
		d.logger.WarnContext(ctx, "no admin recipients configured, skipping alert")
		return Result{}
	}

	msg, err := adminAlertMessage(d.adminAddrs, reg)
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to render admin alert email", "error", err.Error())
		return Result{Err: err}
	}

	res := d.sender.Send(ctx, msg)
	if !res.Success {
		d.logger.WarnContext(ctx, "admin alert email failed",
			"recipients", len(d.adminAddrs),
			"error", errString(res.Err),
		)
	}
	return res
}

func errString(err error) string {
	if err == nil {
		return "send failed"
	}
	return err.Error()
}
