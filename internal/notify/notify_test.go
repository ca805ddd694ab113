package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplierintake/internal/registration/models"
)

type recordingSender struct {
	sent []Message
	fail bool
}

func (s *recordingSender) Send(ctx context.Context, msg Message) Result {
	s.sent = append(s.sent, msg)
	if s.fail {
		return Result{Err: errors.New("smtp unavailable")}
	}
	return Result{Success: true, MessageID: "msg-1"}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func testRegistration() *models.SupplierRegistration {
	return &models.SupplierRegistration{
		CompanyName: "Acme Supplies BV",
		Email:       "jan.janssens@acme.be",
		VATNumber:   "BE0123456789",
		IBAN:        "BE68539007547034",
		Country:     "Belgium",
	}
}

func TestSendConfirmation(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, "admin@example.com", testLogger())

	res := d.SendConfirmation(context.Background(), testRegistration())

	require.True(t, res.Success)
	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, []string{"jan.janssens@acme.be"}, msg.To)
	assert.Contains(t, msg.HTML, "Acme Supplies BV")
	assert.Contains(t, msg.HTML, "Dear Jan,", "greeting falls back to the email local part")
}

func TestSendConfirmationUsesContactPerson(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, "", testLogger())

	reg := testRegistration()
	reg.ContactPerson = "Marie Dupont"
	d.SendConfirmation(context.Background(), reg)

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].HTML, "Dear Marie Dupont,")
}

func TestSendFailureIsReportedNotRaised(t *testing.T) {
	sender := &recordingSender{fail: true}
	d := NewDispatcher(sender, "admin@example.com", testLogger())

	res := d.SendConfirmation(context.Background(), testRegistration())
	assert.False(t, res.Success)
	assert.Error(t, res.Err)
}

func TestSendAdminAlert(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, "Admin@example.com, ops@example.com,, admin@example.com", testLogger())

	res := d.SendAdminAlert(context.Background(), testRegistration())

	require.True(t, res.Success)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"admin@example.com", "ops@example.com"}, sender.sent[0].To,
		"recipients are trimmed, deduplicated, and empties dropped")
	assert.Equal(t, "New supplier registration: Acme Supplies BV", sender.sent[0].Subject)
}

func TestSendAdminAlertWithoutRecipients(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, "", testLogger())

	res := d.SendAdminAlert(context.Background(), testRegistration())

	assert.False(t, res.Success)
	assert.Empty(t, sender.sent, "no send attempt without recipients")
}

func TestTemplatesEscapeResidualMarkup(t *testing.T) {
	// The sanitizer runs upstream, but the templates are the last line of
	// defense and must escape anything that slips through.
	sender := &recordingSender{}
	d := NewDispatcher(sender, "admin@example.com", testLogger())

	reg := testRegistration()
	reg.CompanyName = `Acme <img src=x>`
	d.SendAdminAlert(context.Background(), reg)

	require.Len(t, sender.sent, 1)
	assert.NotContains(t, sender.sent[0].HTML, "<img")
	assert.Contains(t, sender.sent[0].HTML, "&lt;img")
}
