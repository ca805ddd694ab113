// Package models holds the supplier registration entity and the wire types
// used by the intake endpoint.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionRequest is the raw multi-step form payload as posted by the
// client. Nothing in here is trusted until it has passed the validator.
type SubmissionRequest struct {
	CompanyName   string `json:"companyName"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	VATNumber     string `json:"vatNumber"`
	IBAN          string `json:"iban"`
	BIC           string `json:"bic"`
	BankName      string `json:"bankName"`
}

// SupplierRegistration is the persisted entity. All free-text fields are
// HTML-sanitized, email is lower-cased, IBAN/VAT are normalized upper-case.
// Email is the natural identity: at most one registration per address.
// Registrations are immutable once inserted.
type SupplierRegistration struct {
	ID            uuid.UUID
	CompanyName   string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	City          string
	PostalCode    string
	Country       string
	VATNumber     string
	IBAN          string
	BIC           string
	BankName      string
	CreatedAt     time.Time
}

// EmailStatus reports the best-effort notification outcome. A persisted
// registration is successful regardless of what these flags say.
type EmailStatus struct {
	ConfirmationSent bool `json:"confirmationSent"`
	NotificationSent bool `json:"notificationSent"`
}

// SubmissionData echoes the identifying fields back to the client.
type SubmissionData struct {
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
}

// SubmissionResponse is the 200 body for a persisted registration.
type SubmissionResponse struct {
	Message     string         `json:"message"`
	Data        SubmissionData `json:"data"`
	EmailStatus EmailStatus    `json:"emailStatus"`
}

// VATValidationRequest is the standalone VAT check payload.
type VATValidationRequest struct {
	VATNumber string `json:"vatNumber"`
}

// VATValidationResponse reports the outcome of a standalone VAT check.
type VATValidationResponse struct {
	Valid     bool   `json:"valid"`
	VATNumber string `json:"vatNumber"`
	Country   string `json:"country,omitempty"`
	Message   string `json:"message"`
}
