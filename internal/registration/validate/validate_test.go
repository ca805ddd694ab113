package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplierintake/internal/registration/models"
)

func validSubmission() models.SubmissionRequest {
	return models.SubmissionRequest{
		CompanyName:   "Acme Supplies BV",
		ContactPerson: "Jan Janssens",
		Email:         "Jan@Acme-Supplies.be",
		Phone:         "+32 475 123 456",
		Address:       "Stationsstraat 1",
		City:          "Antwerpen",
		PostalCode:    "2000",
		Country:       "Belgium",
		VATNumber:     "BE 0123 456 789",
		IBAN:          "BE68 5390 0754 7034",
		BIC:           "GEBABEBB",
		BankName:      "BNP Paribas Fortis",
	}
}

func TestValidateAcceptsCompleteSubmission(t *testing.T) {
	v := New()
	res := v.Validate(validSubmission())

	require.Empty(t, res.Errors)
	assert.Equal(t, "Acme Supplies BV", res.Sanitized.CompanyName)
	assert.Equal(t, "jan@acme-supplies.be", res.Sanitized.Email, "email must be lower-cased")
	assert.Equal(t, "BE0123456789", res.Sanitized.VATNumber, "VAT must be normalized")
	assert.Equal(t, "BE68539007547034", res.Sanitized.IBAN, "IBAN must be normalized")
	assert.Equal(t, "Belgium", res.Sanitized.Country)
}

func TestValidateIsDeterministic(t *testing.T) {
	v := New()
	req := validSubmission()
	req.CompanyName = "<b>Acme</b> & Co"
	req.Email = "BAD EMAIL"

	first := v.Validate(req)
	second := v.Validate(req)

	assert.Equal(t, first.Errors, second.Errors)
	assert.Equal(t, first.Sanitized, second.Sanitized)
}

func TestValidateEnumeratesAllMissingRequiredFields(t *testing.T) {
	v := New()
	res := v.Validate(models.SubmissionRequest{})

	assert.Equal(t, []string{
		"Company name is required",
		"Email is required",
		"VAT number is required",
		"IBAN is required",
	}, res.Errors)
}

func TestValidateVATOptionalPolicy(t *testing.T) {
	v := New(WithVATOptional())
	req := validSubmission()
	req.VATNumber = ""

	res := v.Validate(req)
	require.Empty(t, res.Errors)
	assert.Empty(t, res.Sanitized.VATNumber, "absent optional field stays empty")
}

func TestSanitizeNeutralizesMarkup(t *testing.T) {
	v := New()
	req := validSubmission()
	req.CompanyName = "<script>alert(1)</script>Acme"
	req.ContactPerson = `<img src=x onerror="alert(1)">Jan`
	req.BankName = "<style>body{}</style>Fortis"

	res := v.Validate(req)
	require.Empty(t, res.Errors)
	assert.Equal(t, "Acme", res.Sanitized.CompanyName)
	assert.Equal(t, "Jan", res.Sanitized.ContactPerson)
	assert.Equal(t, "Fortis", res.Sanitized.BankName)
	assert.NotContains(t, res.Sanitized.CompanyName, "<")
}

func TestValidateFieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.SubmissionRequest)
		wantErr string
	}{
		{"bad email", func(r *models.SubmissionRequest) { r.Email = "not-an-email" }, "Invalid email address"},
		{"email with spaces", func(r *models.SubmissionRequest) { r.Email = "a b@c.com" }, "Invalid email address"},
		{"bad phone", func(r *models.SubmissionRequest) { r.Phone = "call me" }, "Invalid phone number"},
		{"short postal code", func(r *models.SubmissionRequest) { r.PostalCode = "1" }, "Invalid postal code"},
		{"postal code with symbols", func(r *models.SubmissionRequest) { r.PostalCode = "20_00" }, "Invalid postal code"},
		{"unknown country", func(r *models.SubmissionRequest) { r.Country = "Spain" },
			"Country must be one of: Belgium, Netherlands, France, Germany, Luxembourg"},
		{"country is case-sensitive", func(r *models.SubmissionRequest) { r.Country = "belgium" },
			"Country must be one of: Belgium, Netherlands, France, Germany, Luxembourg"},
		{"bad iban checksum", func(r *models.SubmissionRequest) { r.IBAN = "BE68539007547035" }, "Invalid IBAN"},
		{"iban too short", func(r *models.SubmissionRequest) { r.IBAN = "BE685390" }, "Invalid IBAN"},
		{"bad bic", func(r *models.SubmissionRequest) { r.BIC = "GEBA" }, "Invalid BIC/SWIFT code"},
		{"bic wrong length", func(r *models.SubmissionRequest) { r.BIC = "GEBABEBB1" }, "Invalid BIC/SWIFT code"},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSubmission()
			tt.mutate(&req)
			res := v.Validate(req)
			assert.Contains(t, res.Errors, tt.wantErr)
		})
	}
}

func TestValidateLengthLimits(t *testing.T) {
	long := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'a'
		}
		return string(b)
	}

	v := New()

	req := validSubmission()
	req.CompanyName = long(256)
	res := v.Validate(req)
	assert.Contains(t, res.Errors, "Company name must be 255 characters or fewer")

	req = validSubmission()
	req.Address = long(501)
	res = v.Validate(req)
	assert.Contains(t, res.Errors, "Address must be 500 characters or fewer")

	req = validSubmission()
	req.City = long(101)
	res = v.Validate(req)
	assert.Contains(t, res.Errors, "City must be 100 characters or fewer")

	req = validSubmission()
	req.City = long(100)
	res = v.Validate(req)
	assert.Empty(t, res.Errors, "boundary length must pass")
}
